package config

import "os"

func IsDebug() bool {
	return os.Getenv("ASISTENTE_DEBUG") == "1"
}
