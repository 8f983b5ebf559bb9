package contract

import "github.com/getmockd/pactcore/pkg/pathexp"

func mustPath(s string) pathexp.Expression {
	return pathexp.MustParse(s)
}
