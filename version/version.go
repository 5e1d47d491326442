package version

// Version is the current release of licensetools.
const Version = "0.3.0"

// UserAgent identifies this tool against package indexes and registries.
const UserAgent = "licensetools/" + Version + " (+https://github.com/provisioinsights/licensetools)"
