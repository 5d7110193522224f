package appointment

import "github.com/m04kA/SMC-ServiceScheduler/pkg/dbmetrics"

// DBExecutor reused from dbmetrics so the repository accepts *sql.DB, *dbmetrics.DB and transactions
type DBExecutor = dbmetrics.DBExecutor
