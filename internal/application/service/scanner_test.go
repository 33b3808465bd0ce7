package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/dom"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/infrastructure/dom/htmldom"
)

// nestedShadowPage hides a web-component picker three open shadow roots deep.
const nestedShadowPage = `<html><body>
<app-shell>
  <template shadowrootmode="open">
    <booking-form>
      <template shadowrootmode="open">
        <wc-datepicker>
          <template shadowrootmode="open">
            <input class="wc-datepicker__input">
            <button class="wc-datepicker__toggle">open</button>
            <div class="wc-datepicker__calendar">
              <button class="wc-datepicker__day" data-date="2026-10-16">16</button>
              <button class="wc-datepicker__day" data-date="2026-10-17">17</button>
            </div>
          </template>
        </wc-datepicker>
      </template>
    </booking-form>
  </template>
</app-shell>
<locked-widget><template shadowrootmode="closed"><input type="date"></template></locked-widget>
</body></html>`

func TestSearchableRoots_NestedShadowRoots(t *testing.T) {
	doc := htmldom.MustParse(nestedShadowPage)

	roots := SearchableRoots(doc)
	require.Len(t, roots, 4)
	assert.Equal(t, dom.RootDocument, roots[0].Kind())
	assert.Equal(t, doc.ID(), roots[0].ID())
	for _, r := range roots[1:] {
		assert.Equal(t, dom.RootShadow, r.Kind())
	}

	deepest := roots[3]
	el, err := deepest.QuerySelector(".wc-datepicker__input")
	require.NoError(t, err)
	assert.NotNil(t, el)
}

func TestSearchableRoots_FromShadowScopeStartsAtDocument(t *testing.T) {
	doc := htmldom.MustParse(nestedShadowPage)
	inner := SearchableRoots(doc)[2]

	roots := SearchableRoots(inner)
	require.NotEmpty(t, roots)
	assert.Equal(t, doc.ID(), roots[0].ID())
	assert.Len(t, roots, 4)
}

func TestSearchableRoots_Frames(t *testing.T) {
	doc := htmldom.MustParse(`<body>
		<iframe srcdoc="<div id='host'><template shadowrootmode='open'><input class='flatpickr-input'></template></div>"></iframe>
		<iframe src="https://ads.example.net/frame"></iframe>
		<iframe src="/same.html"></iframe>
	</body>`,
		htmldom.WithOrigin("https://demo.local"),
		htmldom.WithFrame("/same.html", `<p>same</p>`),
	)

	roots := SearchableRoots(doc)
	kinds := make([]dom.RootKind, 0, len(roots))
	for _, r := range roots {
		kinds = append(kinds, r.Kind())
	}
	// document, srcdoc frame, its shadow root, same-origin frame; the
	// cross-origin frame is skipped
	assert.Equal(t, []dom.RootKind{dom.RootDocument, dom.RootDocument, dom.RootShadow, dom.RootDocument}, kinds)
}

func TestSearchableRoots_NilScope(t *testing.T) {
	assert.Nil(t, SearchableRoots(nil))
	assert.Nil(t, ScopeOf(nil))
}

func TestScopeOf(t *testing.T) {
	doc := htmldom.MustParse(nestedShadowPage)
	roots := SearchableRoots(doc)
	el, _ := roots[3].QuerySelector("input")

	assert.Equal(t, roots[3].ID(), ScopeOf(el).ID())
}
