package repositories

import "errors"

// ErrNotFound คืนจาก repository ทุกตัวเมื่อหา record ไม่เจอ (gorm, redis)
var ErrNotFound = errors.New("record not found")

// ErrTokenCollision รหัสที่จะสร้างซ้ำกับ token ที่ยังไม่หมดอายุ ผู้เรียกควรสุ่มใหม่
var ErrTokenCollision = errors.New("token value already in use")
