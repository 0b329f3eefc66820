package formatter_test

import (
	"fmt"
	"time"

	"github.com/philipp01105/nlog/core"
	"github.com/philipp01105/nlog/formatter"
)

func ExampleNewTextFormatter() {
	f := formatter.NewTextFormatter(formatter.Config{TimestampFormat: time.Kitchen})

	entry := &core.Entry{
		Time:    time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		Level:   core.InfoLevel,
		Message: "login",
		Payload: core.MapMessageOf("user", "alice", "method", "sso"),
	}

	out, _ := f.Format(entry)
	fmt.Print(string(out))
	// Output:
	// 12:00PM [INFO] login {method=sso, user=alice}
}

func ExampleNewJSONFormatter() {
	f := formatter.NewJSONFormatter(formatter.Config{TimestampFormat: time.DateOnly})

	entry := &core.Entry{
		Time:    time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		Level:   core.InfoLevel,
		Message: "request handled",
		Fields: []core.Field{
			{Key: "status", Int64: 200, Type: core.Int64Type},
		},
	}

	out, _ := f.Format(entry)
	fmt.Print(string(out))
	// Output:
	// {"time":"2026-01-15","level":"INFO","message":"request handled","status":200}
}
