package utils

import (
	"fmt"
	"log"
	"sync/atomic"
)

// Read concurrently by server goroutines
var engineLog, serverLog atomic.Bool

func InitLog(engine, server bool) {
	engineLog.Store(engine)
	serverLog.Store(server)
}

func ServerLog(format string, v ...any) {
	if serverLog.Load() {
		log.Printf("INFO Server: %s", fmt.Sprintf(format, v...))
	}
}

// EngineLog reports progress of an estimator (role: "sample", "iterate", ...)
func EngineLog(role string, format string, v ...any) {
	if engineLog.Load() {
		log.Printf("INFO Engine %s: %s", role, fmt.Sprintf(format, v...))
	}
}

func WarnLog(role string, format string, v ...any) {
	log.Printf("WARN %s: %s", role, fmt.Sprintf(format, v...))
}

func FailOnError(msg string, err error) {
	if err != nil {
		log.Fatalf("%s: %v", msg, err)
	}
}
