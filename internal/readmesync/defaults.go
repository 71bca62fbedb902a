package readmesync

const (
	// DefaultURITemplate points at the raw README on the master branch.
	DefaultURITemplate = "https://raw.githubusercontent.com/zfcampus/%s/master/README.md"
	// DefaultPathTemplate is resolved relative to the writer's base directory.
	DefaultPathTemplate = "%s.md"
	// DefaultLinkTemplate prefixes relative links found in a README.
	DefaultLinkTemplate = "https://github.com/zfcampus/%s/tree/master/"
)

// DefaultModules lists the repositories whose README is mirrored.
var DefaultModules = []string{
	"zf-apigility",
	"zf-apigility-admin",
	"zf-apigility-documentation",
	"zf-apigility-documentation-apiblueprint",
	"zf-apigility-documentation-swagger",
	"zf-apigility-doctrine",
	"zf-apigility-provider",
	"zf-apigility-welcome",
	"zf-api-problem",
	"zf-configuration",
	"zf-console",
	"zf-content-negotiation",
	"zf-content-validation",
	"zf-deploy",
	"zf-development-mode",
	"zf-doctrine-querybuilder",
	"zf-hal",
	"zf-http-cache",
	"zf-mvc-auth",
	"zf-oauth2",
	"zf-rest",
	"zf-rpc",
	"zf-versioning",
}

// DefaultRuleSpecs strips the build and coverage badge lines and rewrites
// relative links against linkTemplate. linkTemplate carries the module Slot,
// e.g. DefaultLinkTemplate.
//
// The link rule matches the destination part only, so an image nested in a
// link gets both targets rewritten and an optional quoted title is kept.
func DefaultRuleSpecs(linkTemplate string) []RuleSpec {
	return []RuleSpec{
		{
			Name:       "strip-build-status",
			Pattern:    `^\[!\[build status\][^\n]*(?:\n|$)`,
			IgnoreCase: true,
			Multiline:  true,
		},
		{
			Name:       "strip-coverage-status",
			Pattern:    `^\[!\[coverage status\][^\n]*(?:\n|$)`,
			IgnoreCase: true,
			Multiline:  true,
		},
		{
			Name:        "absolute-links",
			Pattern:     `\]\((?!http|#)([^)\s]+)((?:\s+"[^"\n]*")?\))`,
			Replacement: "](" + linkTemplate + "$1$2",
			IgnoreCase:  true,
		},
	}
}
