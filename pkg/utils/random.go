package utils

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

const digits = "0123456789"

// randomSource แทนที่ได้ใน test
var randomSource io.Reader = rand.Reader

// GenerateRandomString สร้าง random string จาก charset ที่กำหนด
// ถ้าอ่าน entropy ไม่ได้จะคืน error แทนการสร้างค่าที่เดาได้
func GenerateRandomString(n int, charset string) (string, error) {
	limit := big.NewInt(int64(len(charset)))
	result := make([]byte, n)
	for i := 0; i < n; i++ {
		num, err := rand.Int(randomSource, limit)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		result[i] = charset[num.Int64()]
	}
	return string(result), nil
}

// GenerateToken สร้าง token 6 หลักสำหรับยืนยันบัญชี / reset password
func GenerateToken() (string, error) {
	return GenerateRandomString(6, digits)
}
