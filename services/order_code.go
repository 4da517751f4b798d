package services

import (
	"crypto/rand"
	"fmt"
)

// orderCodeAlphabet leaves out 0/O and 1/I which are easy to confuse when
// an order code is read out over the phone. 32 characters keeps the
// modulo mapping below unbiased.
const orderCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	orderCodePrefix = "KTB-"
	orderCodeLength = 6
)

// GenerateOrderCode produces a short public order identifier such as
// "KTB-7MK2QF". It is independent of the database id so it can be produced
// before the order row exists. Uniqueness is not guaranteed here: with 32^6
// combinations collisions are rare at storefront volume, and the unique
// index on orders.order_code catches the rest so the caller can retry.
func GenerateOrderCode() (string, error) {
	buf := make([]byte, orderCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate order code: %w", err)
	}

	code := make([]byte, orderCodeLength)
	for i, b := range buf {
		code[i] = orderCodeAlphabet[int(b)%len(orderCodeAlphabet)]
	}
	return orderCodePrefix + string(code), nil
}
