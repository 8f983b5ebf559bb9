// Package validation checks matching rule and generator documents before
// they are loaded.
//
// Validation runs in two passes. The first checks the document shape against
// an embedded JSON Schema (draft 2020-12). The second, run only when the
// shape is valid, parses every path expression and compiles every regular
// expression and date pattern the document carries, so that errors the
// loaders would only log are reported up front.
//
//	v := validation.NewValidator()
//	result := v.ValidateFile("contracts/orders.yaml", validation.KindAuto)
//	if !result.Valid {
//	    for _, e := range result.Errors {
//	        fmt.Println(e)
//	    }
//	}
package validation
