package domain

import "encoding/json"

// BilingualText is a result field that may arrive from a provider either as
// a bare string or as a {cn, en} object. Older or narrower model
// configurations return plain strings, newer ones return the bilingual
// object; both shapes must be accepted.
type BilingualText struct {
	CN string `json:"cn"`
	EN string `json:"en"`

	// plain holds the value when the provider sent a bare string. A plain
	// value resolves to itself for every language preference.
	plain string
}

// PlainText returns a BilingualText carrying a bare string value.
func PlainText(s string) BilingualText {
	return BilingualText{plain: s}
}

// Bilingual returns a BilingualText carrying both language variants.
func Bilingual(cn, en string) BilingualText {
	return BilingualText{CN: cn, EN: en}
}

// Resolve returns the text for the given language preference. Plain values
// resolve to themselves; otherwise "en" selects the English variant when
// present, and everything else (including unsupported language keys or a
// missing English variant) falls back to the Chinese text.
func (b BilingualText) Resolve(lang string) string {
	if b.plain != "" {
		return b.plain
	}
	if lang == "en" && b.EN != "" {
		return b.EN
	}
	return b.CN
}

// IsZero reports whether the value carries no text in any shape.
func (b BilingualText) IsZero() bool {
	return b.plain == "" && b.CN == "" && b.EN == ""
}

// UnmarshalJSON accepts either a JSON string or a {cn, en} object.
func (b *BilingualText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*b = BilingualText{plain: s}
		return nil
	}

	var obj struct {
		CN string `json:"cn"`
		EN string `json:"en"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*b = BilingualText{CN: obj.CN, EN: obj.EN}
	return nil
}

// MarshalJSON writes the value back in the shape it arrived in, so stored
// results round-trip without widening plain strings into objects.
func (b BilingualText) MarshalJSON() ([]byte, error) {
	if b.plain != "" {
		return json.Marshal(b.plain)
	}
	return json.Marshal(struct {
		CN string `json:"cn"`
		EN string `json:"en"`
	}{b.CN, b.EN})
}
