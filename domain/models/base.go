package models

import "github.com/google/uuid"

// assignID ใส่ UUID ใหม่ถ้ายังไม่มี (sqlite ไม่มี gen_random_uuid())
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// UUIDList รายการ id ที่เก็บเป็น JSON array ใน column เดียว
type UUIDList []uuid.UUID

// Contains ตรวจว่ามี id นี้ใน list หรือไม่
func (l UUIDList) Contains(id uuid.UUID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Without คืน list ใหม่ที่ไม่มี id นี้ (ลบทุกตัวที่ซ้ำ)
func (l UUIDList) Without(id uuid.UUID) UUIDList {
	out := make(UUIDList, 0, len(l))
	for _, v := range l {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
