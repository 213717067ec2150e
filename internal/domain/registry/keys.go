package registry

// Well-known keys read or written by the bootstrap core.
const (
	KeyDebug           = "debug_enabled"
	KeyAdminEmail      = "admin_email"
	KeySettingsPath    = "settings_path"
	KeyLibPath         = "lib_path"
	KeyAppPath         = "app_path"
	KeyAutoload        = "autoload"
	KeyAuthenticator   = "authenticator"
	KeyFrontController = "front_controller"
	KeyAppExternal     = "app_external"
	KeyLibExternal     = "lib_external"
	KeyLoad            = "load"

	// KeyAutoloadSearch enables the slow pattern search fallback.
	KeyAutoloadSearch = "autoload_search_enable"
	// KeyAutoloadIgnore lists directories pruned from autoload scans.
	KeyAutoloadIgnore = "autoload_path_ignore"
)
