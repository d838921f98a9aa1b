package config

import (
	"os"
)

const DATABASE_TYPE = "PFLOW_DATABASE_TYPE"
const DATABASE_URL = "PFLOW_DATABASE_URL"
const DATABASE_SQLLITE_FILE_NAME = "PFLOW_DATABASE_SQLLITE_FILE_NAME"
const LOG_LEVEL = "PFLOW_LOG_LEVEL"

const DATABASE_TYPE_POSTGRES = "POSTGRES"
const DATABASE_TYPE_MYSQL = "MYSQL"
const DATABASE_TYPE_SQLLITE = "SQLLITE"

func GetSystemSettingString(settingKey string) string {
	val := os.Getenv(settingKey)
	if val != "" {
		return val
	}
	if settingKey == DATABASE_SQLLITE_FILE_NAME {
		return "./projectflow.db"
	}
	if settingKey == LOG_LEVEL {
		return "INFO"
	}
	return ""
}
