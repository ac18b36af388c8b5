package identity

// FormatPhone formats a Brazilian phone number for display.
// 11 digits become "(DD) DDDDD-DDDD" and 10 digits "(DD) DDDD-DDDD".
// Any other length is returned as bare digits.
func FormatPhone(raw string) string {
	d := digitsOnly(raw)
	switch len(d) {
	case 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	case 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	}
	return d
}
