package materials

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the key.
const (
	MsgUploadPrompt   = "Upload an Excel file"
	MsgNoUpload       = "Upload an Excel file to see quantity charts per material."
	MsgPreview        = "Data preview:"
	MsgMissingFields  = "The uploaded file has no 'Component ID', 'Quantity' and 'Unit' columns."
	MsgBarHeading     = "Quantity per material - bar chart"
	MsgPieHeading     = "Quantity per material - pie chart"
	MsgRecyclingHead  = "Recycling possibility - pie chart"
	MsgBarTitle       = "Quantity by Component ID"
	MsgPieTitle       = "Quantity Distribution by Component ID"
	MsgRecyclingTitle = "Recycling Possibility Distribution"
	MsgComponentID    = "Component ID"
	MsgQuantity       = "Quantity"
	MsgUnit           = "Unit"
	MsgRecyclable     = "Recyclable"
	MsgShare          = "Share"
	MsgPossible       = "possible"
	MsgNotPossible    = "not-possible"
	MsgUnmapped       = "unmapped"
)

var messages = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	ko := map[string]string{
		MsgUploadPrompt:   "엑셀 파일을 업로드하세요",
		MsgNoUpload:       "엑셀 파일을 업로드하면 자재별 수량 그래프가 표시됩니다.",
		MsgPreview:        "데이터 미리보기:",
		MsgMissingFields:  "업로드한 파일에 'Component ID', 'Quantity', 및 'Unit' 컬럼이 없습니다.",
		MsgBarHeading:     "자재별 수량 - 막대그래프",
		MsgPieHeading:     "자재별 수량 - 파이 차트",
		MsgRecyclingHead:  "재활용 가능성 - 파이 차트",
		MsgBarTitle:       MsgBarTitle,
		MsgPieTitle:       MsgPieTitle,
		MsgRecyclingTitle: MsgRecyclingTitle,
		MsgComponentID:    MsgComponentID,
		MsgQuantity:       MsgQuantity,
		MsgUnit:           MsgUnit,
		MsgRecyclable:     MsgRecyclable,
		MsgShare:          "비율",
		MsgPossible:       "가능",
		MsgNotPossible:    "불가능",
		MsgUnmapped:       "미분류",
	}
	for key, text := range ko {
		_ = b.SetString(language.English, key, key)
		_ = b.SetString(language.Korean, key, text)
	}
	return b
}

// Messages translates user visible strings.
type Messages struct {
	tag language.Tag
	p   *message.Printer
}

var (
	supportedLanguages = []language.Tag{language.English, language.Korean}
	languageMatcher    = language.NewMatcher(supportedLanguages)
)

// NewMessages returns messages in the supported language closest to tag.
func NewMessages(tag language.Tag) Messages {
	_, idx, _ := languageMatcher.Match(tag)
	return newMessages(supportedLanguages[idx])
}

func newMessages(tag language.Tag) Messages {
	return Messages{tag: tag, p: message.NewPrinter(tag, message.Catalog(messages))}
}

// NewMessagesAccept picks a language from an Accept-Language header. ok is
// false when the header names no usable language.
func NewMessagesAccept(header string) (m Messages, ok bool) {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Messages{}, false
	}
	_, idx, _ := languageMatcher.Match(tags...)
	return newMessages(supportedLanguages[idx]), true
}

// NewMessagesFor parses a BCP 47 language name such as "en" or "ko".
func NewMessagesFor(lang string) (Messages, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return Messages{}, err
	}
	return NewMessages(tag), nil
}

// Tag is the language the messages are written in. The zero Messages
// returns the untranslated English keys.
func (m Messages) Tag() language.Tag {
	if m.p == nil {
		return language.English
	}
	return m.tag
}

func (m Messages) Get(key string) string {
	if m.p == nil {
		return key
	}
	return m.p.Sprintf(key)
}

func (m Messages) Recyclability(r Recyclability) string {
	switch r {
	case Possible:
		return m.Get(MsgPossible)
	case NotPossible:
		return m.Get(MsgNotPossible)
	default:
		return m.Get(MsgUnmapped)
	}
}
