package logging

import (
	"fmt"
	"log"
	"runtime"
)

// HandleError reports a hard failure and stops the process unless exitOnError
// is explicitly set to false.
func HandleError(err error, service string, operation string, exitOnError ...bool) {
	_, file, line, _ := runtime.Caller(1)
	fmt.Printf("Error pointer: %s:%d\n", file, line)
	if len(exitOnError) >= 1 && !exitOnError[0] {
		log.Printf("Service: %s, Operation: %s, Error: %s\n", service, operation, err)
	} else {
		log.Fatalf("Service: %s, Operation: %s, Error: %s\n", service, operation, err)
	}
}
