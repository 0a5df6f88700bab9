package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса

var builtinSeeds = []string{
	"",
	"DEFINE AS WITH WHERE",
	"DEFINE g\n\"abc\"\nGENERATE g",
	"define g string -> LEN(3 3) generate g with OUT_MAX = 10",
	"DEFINE g `de ad be ef` AS magic u8[4] GENERATE g",
	"DEFINE g i64 -> RANGE(-9223372036854775808 9223372036854775807) GENERATE g",
	"DEFINE g u8 AS a WHERE a -> RANGE(1 2), FORMAT(\"bin\") GENERATE g TERM = NULL",
	"DEFINE g \"x\" GENERATE g OUT_MIN = 5 OUT_MAX = 2",
	"DEFINE g ref AS r -> LEN((1 2)) GENERATE g",
	"GENERATE g DEFINE g",
	"DEFINE g u8 AS a be_u32 AS b WHERE a -> RANGE(1 2), FORMAT(\"hex\") b -> RANGE(0 9) GENERATE g OUT_MAX = 16",
	"DEFINE g \"k=\" string AS v -> LEN(0 8) \";\" GENERATE g WITH TERM = RF TERM = LF",
	"DEFINE h bytes AS raw -> LEN(2 4) DEFINE g 7 GENERATE g OUT_MIN = 1",
	"DEFINE g u8[-3] 99999999999999999999 \"unterminated",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по testdata, добавляем все *.fuzl файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".fuzl" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(b []byte) []byte {
	if len(b) > maxSeedBytes {
		b = b[:maxSeedBytes]
	}
	return append([]byte(nil), b...)
}
