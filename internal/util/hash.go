package util

import (
	"encoding/binary"
	"math/rand"

	"github.com/zeebo/xxh3"
)

// Соли разделяют независимые потоки случайности для одной позиции
const (
	SaltFlora uint64 = iota + 1
	SaltTreeShape
	SaltGrowth
)

// PositionHash детерминированный хеш позиции блока, сида мира и соли
func PositionHash(seed int64, x, y, z int, salt uint64) uint64 {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(int64(x)))
	binary.LittleEndian.PutUint64(buf[8:], uint64(int64(y)))
	binary.LittleEndian.PutUint64(buf[16:], uint64(int64(z)))
	binary.LittleEndian.PutUint64(buf[24:], salt)
	return xxh3.HashSeed(buf[:], uint64(seed))
}

// HashUnit отображает хеш в [0, 1)
func HashUnit(h uint64) float64 {
	return float64(h>>11) / (1 << 53)
}

// PositionRand возвращает генератор, засеянный хешем позиции
func PositionRand(seed int64, x, y, z int, salt uint64) *rand.Rand {
	return rand.New(rand.NewSource(int64(PositionHash(seed, x, y, z, salt))))
}
