package style

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-reprgen/pkg/model"
)

var (
	htmlPolicyOnce sync.Once
	htmlPolicy     *bluemonday.Policy
)

// HTML renders the call layout as span markup for debug pages:
//
//	<span class="repr"><span class="repr-type">Klass</span>(<span class="repr-attr">...</span>)</span>
//
// The markup passes through a sanitiser that only keeps span elements with a
// class attribute, so reprs of user data cannot inject markup.
func HTML(_ any, typeName string, attrs []model.Attribute) string {
	var b strings.Builder
	b.WriteString(`<span class="repr"><span class="repr-type">`)
	b.WriteString(html.EscapeString(typeName))
	b.WriteString(`</span>(`)
	for idx, attr := range attrs {
		if idx > 0 {
			b.WriteString(", ")
		}
		b.WriteString(`<span class="repr-attr">`)
		if attr.Named {
			b.WriteString(`<span class="repr-key">`)
			b.WriteString(html.EscapeString(FormatKey(attr.Key)))
			b.WriteString(`</span>=`)
		}
		b.WriteString(`<span class="repr-value">`)
		b.WriteString(html.EscapeString(Repr(attr.Value)))
		b.WriteString(`</span></span>`)
	}
	b.WriteString(`)</span>`)
	return Sanitize(b.String())
}

// Sanitize strips everything but span elements and their class attribute.
func Sanitize(markup string) string {
	return htmlSanitizer().Sanitize(markup)
}

func htmlSanitizer() *bluemonday.Policy {
	htmlPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("span")
		policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("span")
		htmlPolicy = policy
	})
	return htmlPolicy
}
