package mealplan

import (
	"math/rand"
	"time"
)

// RandomSource 菜單產生使用的亂數來源，*rand.Rand 即可滿足
type RandomSource interface {
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// RandomFactory 每個請求建立一個獨立的亂數來源
type RandomFactory func() RandomSource

// NewRandomFactory seed 不為 0 時每次都從同一個 seed 開始，產生可重現的菜單
func NewRandomFactory(seed int64) RandomFactory {
	if seed != 0 {
		return func() RandomSource {
			return rand.New(rand.NewSource(seed))
		}
	}
	return func() RandomSource {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
}
