package vars

const AppName = "fpless"

// Version set at build time via -ldflags.
var Version = "dev"

// PrefsFile default preferences file, relative to the project root.
const PrefsFile = "pref.yml"
