// Package usecase は銘柄比較のビジネスロジック（入力の正規化、期間検証、
// データソース選択、累積リターン計算）を実装します。
package usecase

import (
	"fmt"
	"strings"

	"stock_compare/internal/feature/comparison/domain"
	"stock_compare/internal/feature/comparison/domain/entity"
)

// Alphabet は銘柄コードに残す文字集合を表します。
type Alphabet string

const (
	// AlphabetStrict は英大文字（A〜Z）のみを許可します。
	AlphabetStrict Alphabet = "strict"
	// AlphabetExtended は取引所付きコード用に A〜Z, 0〜9, '.', ':', '-' を許可します。
	AlphabetExtended Alphabet = "extended"
)

// ParseAlphabet は設定値を Alphabet に変換します。空文字は strict とみなします。
func ParseAlphabet(s string) (Alphabet, error) {
	switch Alphabet(strings.ToLower(strings.TrimSpace(s))) {
	case "", AlphabetStrict:
		return AlphabetStrict, nil
	case AlphabetExtended:
		return AlphabetExtended, nil
	default:
		return "", fmt.Errorf("unknown symbol alphabet %q", s)
	}
}

// Sanitizer は自由入力のティッカーを正規化します。
type Sanitizer struct {
	alphabet Alphabet
}

// NewSanitizer は指定された文字集合で Sanitizer を生成します。
func NewSanitizer(alphabet Alphabet) Sanitizer {
	if alphabet != AlphabetExtended {
		alphabet = AlphabetStrict
	}
	return Sanitizer{alphabet: alphabet}
}

// Sanitize は入力を大文字化し、許可された文字以外を取り除きます。
// 結果が空の場合は domain.ErrInvalidSymbol を返します。
func (s Sanitizer) Sanitize(raw string) (entity.Symbol, error) {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		if s.allowed(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidSymbol, raw)
	}
	return entity.Symbol(b.String()), nil
}

func (s Sanitizer) allowed(r rune) bool {
	if r >= 'A' && r <= 'Z' {
		return true
	}
	if s.alphabet != AlphabetExtended {
		return false
	}
	return (r >= '0' && r <= '9') || r == '.' || r == ':' || r == '-'
}
