// Package hcl implements config.Loader for HCL settings files and renders
// effective settings back to HCL.
//
// A settings file may contain one each of the `session`, `stage` and `log`
// blocks; every attribute is optional and only overrides what it names.
// Expressions can read the process environment through the `env` map:
//
//	stage {
//	  listen = "${env.VERTON_HOST}:4000"
//	}
package hcl
