package pattern_test

import (
	"fmt"
	"time"

	"github.com/philipp01105/nlog/core"
	"github.com/philipp01105/nlog/pattern"
)

func ExampleNewLayout() {
	layout, err := pattern.NewLayout(pattern.Config{
		Pattern: "%d{15:04:05} %-5p %m %K%n",
	})
	if err != nil {
		panic(err)
	}

	entry := &core.Entry{
		Time:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Level:   core.InfoLevel,
		Message: "login",
		Payload: core.MapMessageOf("user", "alice", "method", "sso"),
	}
	fmt.Print(layout.Text(entry))
	// Output: 12:00:00 INFO  login {method=sso, user=alice}
}

func ExampleMapConverter() {
	entry := &core.Entry{Payload: core.MapMessageOf("a", "1", "b", "2")}

	for _, options := range [][]string{nil, {"a"}, {"c"}} {
		c := pattern.NewMapConverter(options, pattern.DefaultFormattingInfo())
		layout := pattern.MustNewLayout(pattern.Config{Pattern: "%" + c.Name()})
		fmt.Printf("%s: %q\n", c.Name(), layout.Text(entry))
	}
	// Output:
	// MAP: "{a=1, b=2}"
	// MAP{a}: "1"
	// MAP{c}: ""
}
