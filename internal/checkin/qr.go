// Package checkin renders check-in codes.  A code is the booking's
// validation URL encoded as a QR symbol in text form, so it can be
// stored in a column, embedded in a plain-text mail and scanned off a
// terminal alike.
package checkin

import qrcode "github.com/skip2/go-qrcode"

// Encode returns a text-art QR rendering of the payload.
func Encode(payload string) (string, error) {
	q, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return "", err
	}
	return q.ToSmallString(false), nil
}
