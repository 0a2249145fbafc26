package store

// Table names
const (
	tableResorts            = "resorts"
	tableFeatures           = "features"
	tableEnvironments       = "environments"
	tableResortFeatures     = "resort_features"
	tableResortEnvironments = "resort_environments"
	tableRoles              = "roles"
	tableUsers              = "users"
)

// Resort association queries
const (
	queryInsertResortFeature      = `INSERT INTO resort_features (resort_id, feature_id) VALUES (?, ?)`
	queryInsertResortEnvironment  = `INSERT INTO resort_environments (resort_id, environment_id) VALUES (?, ?)`
	queryDeleteResortFeatures     = `DELETE FROM resort_features WHERE resort_id = ?`
	queryDeleteResortEnvironments = `DELETE FROM resort_environments WHERE resort_id = ?`
)

// User queries
const (
	usersFrom = `users u JOIN roles r ON r.id = u.role_id`
)
