package materials

import (
	"testing"

	"golang.org/x/text/language"
)

func TestMessages(t *testing.T) {
	cases := []struct {
		tag language.Tag
		key string
		out string
	}{
		{language.English, MsgPreview, "Data preview:"},
		{language.Korean, MsgPreview, "데이터 미리보기:"},
		{language.Korean, MsgBarTitle, "Quantity by Component ID"},
		{language.German, MsgPossible, "possible"},
	}

	for _, c := range cases {
		if out := NewMessages(c.tag).Get(c.key); out != c.out {
			t.Errorf("%v %q: got %q, expected %q", c.tag, c.key, out, c.out)
		}
	}

	ko := NewMessages(language.Korean)
	if s := ko.Recyclability(NotPossible); s != "불가능" {
		t.Errorf("unexpected label %q", s)
	}
	if s := (Messages{}).Recyclability(Possible); s != "possible" {
		t.Errorf("unexpected label %q", s)
	}
}

func TestNewMessagesAccept(t *testing.T) {
	cases := []struct {
		header string
		ok     bool
		out    string
	}{
		{"ko-KR,ko;q=0.9,en;q=0.8", true, "가능"},
		{"en-US,en;q=0.9", true, "possible"},
		{"fr-FR", true, "possible"},
		{"", false, ""},
	}

	for _, c := range cases {
		m, ok := NewMessagesAccept(c.header)
		if ok != c.ok {
			t.Errorf("%q: ok %v, expected %v", c.header, ok, c.ok)
			continue
		}
		if ok && m.Recyclability(Possible) != c.out {
			t.Errorf("%q: got %q, expected %q", c.header, m.Recyclability(Possible), c.out)
		}
	}
}

func TestMessagesTag(t *testing.T) {
	cases := []struct {
		msgs Messages
		tag  string
	}{
		{NewMessages(language.Korean), "ko"},
		{NewMessages(language.MustParse("ko-KR")), "ko"},
		{NewMessages(language.German), "en"},
		{Messages{}, "en"},
	}

	for _, c := range cases {
		if tag := c.msgs.Tag().String(); tag != c.tag {
			t.Errorf("got tag %q, expected %q", tag, c.tag)
		}
	}

	m, _ := NewMessagesAccept("ko-KR,ko;q=0.9")
	if tag := m.Tag().String(); tag != "ko" {
		t.Errorf("got tag %q, expected ko", tag)
	}
}
