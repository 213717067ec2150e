// Package library loads the external libraries named in the settings.
//
// The registry keys lib_external and app_external hold descriptor lists,
// global libraries first:
//
//	"lib_external": [{"name": "mailer", "class": "Mail.Mailer"}]
//
// Each descriptor's class is resolved through the autoloader. When the
// resolved file has a config.json next to it, that file is loaded into the
// registry with the usual settings rules.
package library
