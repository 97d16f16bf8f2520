// Package rng предоставляет внедряемый источник случайности.
//
// Все вероятностные проверки ядра (уклонение, крит, обнаружение ловушек,
// восстановление от статусов) получают Source через конструктор, а не
// обращаются к глобальному math/rand. Это позволяет тестам подставлять
// фиксированные последовательности и делает симуляцию воспроизводимой
// при одинаковом сиде.
package rng

import (
	"math/rand"
	"time"
)

// Source - источник равномерной случайности.
// *rand.Rand реализует этот интерфейс без обёрток.
type Source interface {
	// Float64 возвращает равномерное значение в [0.0, 1.0).
	Float64() float64
	// Intn возвращает равномерное целое в [0, n). Паникует при n <= 0.
	Intn(n int) int
}

// New создает источник с заданным сидом.
func New(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// NewTime создает источник, засеянный текущим временем.
// Используется в продакшене, когда сид не задан флагом.
func NewTime() Source {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Sequence - детерминированный источник для тестов.
// Возвращает значения Values по кругу.
type Sequence struct {
	Values []float64
	pos    int
}

// NewSequence создает источник с фиксированной последовательностью.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{Values: values}
}

func (s *Sequence) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.pos%len(s.Values)]
	s.pos++
	return v
}

func (s *Sequence) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn with non-positive n")
	}
	return int(s.Float64() * float64(n))
}
