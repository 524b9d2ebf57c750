package test_helpers

import (
	"encoding/json"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
)

func AssertBoolean(t *testing.T, got bool, want bool) {
	t.Helper()
	if got != want {
		t.Errorf("got '%t' want '%t'\n", got, want)
	}
}

func AssertJSONEquality(t *testing.T, rr *httptest.ResponseRecorder, expected string) {
	t.Helper()
	AssertJSONStringEquality(t, rr.Body.String(), expected)
}

func AssertJSONStringEquality(t *testing.T, body string, expected string) {
	t.Helper()
	var got interface{}
	var want interface{}

	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("%s\n", err.Error())
	}

	if err := json.Unmarshal([]byte(expected), &want); err != nil {
		t.Fatalf("%s\n", err.Error())
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected body: got %#v, wanted %#v\n", body, expected)
	}
}

func AssertStatusCode(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if status := rr.Code; status != want {
		t.Errorf("wrong status code: got %v, wanted %v\n", status, want)
	}
}

func AssertString(t *testing.T, got string, want string) {
	t.Helper()
	if got != want {
		t.Errorf("got '%s' want '%s'\n", got, want)
	}
}

// ParseHTML parses a fragment or page for selector-based assertions.
func ParseHTML(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("cannot parse HTML: %s\n", err.Error())
	}
	return doc
}

// FindText returns the trimmed text of every element matching selector.
func FindText(t *testing.T, markup string, selector string) []string {
	t.Helper()
	var texts []string
	ParseHTML(t, markup).Find(selector).Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(s.Text()))
	})
	return texts
}

func AdjustTime(now time.Time, d string) time.Time {
	duration, _ := time.ParseDuration(d)
	return now.Add(duration)
}
