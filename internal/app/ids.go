package app

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// VoucherAlphabet omits I, O, 1 and 0 so codes survive being read aloud.
const VoucherAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const voucherLength = 6

func newID() string {
	return uuid.NewString()
}

// newVoucherCode draws each symbol uniformly; 256 is a multiple of 32 so
// taking the low five bits of a random byte has no modulo bias.
func newVoucherCode() (string, error) {
	buf := make([]byte, voucherLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	for i, b := range buf {
		buf[i] = VoucherAlphabet[int(b)%len(VoucherAlphabet)]
	}
	return string(buf), nil
}

// newQRToken returns QR-<unix millis>-<base36 random>. The token is opaque to
// everything but the lookup query.
func newQRToken(now time.Time) (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	suffix := strconv.FormatUint(binary.BigEndian.Uint64(b[:]), 36)
	return fmt.Sprintf("QR-%d-%s", now.UnixMilli(), suffix), nil
}

// CodeGenerator issues a voucher code and QR token pair.
type CodeGenerator func(now time.Time) (voucher, token string, err error)

func defaultCodes(now time.Time) (string, string, error) {
	voucher, err := newVoucherCode()
	if err != nil {
		return "", "", err
	}
	token, err := newQRToken(now)
	if err != nil {
		return "", "", err
	}
	return voucher, token, nil
}
