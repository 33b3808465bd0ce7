package rod

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/application/service"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/dom"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/entity"
)

func loadDocument(t *testing.T, markup string) dom.Document {
	t.Helper()
	adapter := newTestAdapter(t)
	ctx := context.Background()
	require.NoError(t, adapter.Navigate(ctx, serve(t, markup)))

	doc, err := adapter.Document(ctx)
	require.NoError(t, err)
	return doc
}

func TestDocument_QueryAndEvents(t *testing.T) {
	doc := loadDocument(t, FlatpickrHTML)

	el, err := doc.QuerySelector(".flatpickr-input")
	require.NoError(t, err)
	require.NotNil(t, el)
	assert.Equal(t, "input", el.TagName())

	missing, err := doc.QuerySelector(".nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, el.SetValue("2026-10-17"))
	require.NoError(t, el.Dispatch(dom.Event{Type: "change"}))

	v, err := el.Value()
	require.NoError(t, err)
	assert.Equal(t, "2026-10-17", v)

	logEl, err := doc.QuerySelector("#log")
	require.NoError(t, err)
	text, err := logEl.Text()
	require.NoError(t, err)
	assert.Equal(t, "changed:2026-10-17", text)

	assert.True(t, doc.HasGlobal("flatpickr"))
	assert.False(t, doc.HasGlobal("flatpickr.l10ns.xx"))

	require.NoError(t, el.Focus())
	active, err := doc.ActiveElement()
	require.NoError(t, err)
	assert.Equal(t, "input", active.TagName())
}

func TestDocument_NestedShadowRoots(t *testing.T) {
	doc := loadDocument(t, ShadowHTML)

	roots := service.SearchableRoots(doc)
	require.Len(t, roots, 4, "document plus three open shadow roots")
	assert.Equal(t, dom.RootDocument, roots[0].Kind())
	for _, r := range roots[1:] {
		assert.Equal(t, dom.RootShadow, r.Kind())
	}

	det, ok := service.NewCapabilityRegistry(nil).Detect(doc)
	require.True(t, ok)
	assert.Equal(t, entity.PickerFlatpickr, det.PickerType)
	assert.Equal(t, dom.RootShadow, det.Root.Kind())
	assert.Equal(t, roots[3].ID(), det.Root.ID())
}

func TestElement_CallAndProperty(t *testing.T) {
	doc := loadDocument(t, APIHTML)

	el, err := doc.QuerySelector("#target")
	require.NoError(t, err)
	require.NotNil(t, el)

	out, err := el.Call("_picker.setDate", "2026-10-11", "2026-10-17")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-11/2026-10-17", out)

	v, ok, err := el.Property("_picker.selected")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2026-10-11/2026-10-17", v)

	v, ok, err = el.Property("when")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2026-10-17T00:00:00.000Z", v)

	_, ok, err = el.Property("_picker.nothing.here")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = el.Call("_picker.open")
	assert.ErrorIs(t, err, ErrNoSuchMethod)
}
