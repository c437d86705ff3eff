package hostfs

// Well-known host file locations.
const (
	EtcPasswdRel = "etc/passwd"
	EtcShadowRel = "etc/shadow"
)
