package trace

import (
	"os"
)

// Level задаёт подробность внутренней трассировки.
type Level uint8

const (
	// LevelOff — трассировка выключена.
	LevelOff Level = iota
	// LevelPhases — только фазы пайплайна.
	LevelPhases
	// LevelDetail — фазы плюс детали (количества токенов, узлов, диагностик).
	LevelDetail
)

// FromEnv читает SPICY_TRACE: "1" включает фазы, "2" — детали.
func FromEnv() Level {
	switch os.Getenv("SPICY_TRACE") {
	case "1":
		return LevelPhases
	case "2":
		return LevelDetail
	default:
		return LevelOff
	}
}
