package subst_test

import (
	"fmt"

	"github.com/lwmacct/261019-go-pkg-envsubst/pkg/subst"
)

// Example_substitute 演示花括号与非花括号占位符的替换。
func Example_substitute() {
	env := subst.Env{"APP_HOST": "db.local"}

	out, n := subst.Substitute("host: ${APP_HOST}\nport: $APP_PORT\n", env)
	fmt.Printf("%q\n", out)
	fmt.Println("replacements:", n)

	// Output:
	// "host: db.local\nport: \n"
	// replacements: 2
}

// Example_missing 演示列出未设置的变量。
func Example_missing() {
	env := subst.Env{"APP_HOST": "db.local"}

	fmt.Println(subst.Missing("${APP_HOST}:$APP_PORT", env))

	// Output:
	// [APP_PORT]
}
