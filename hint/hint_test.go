package hint

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"regexp"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	nbtable "github.com/domonda/go-nbtable"
)

type company struct {
	Name string `col:"Company"`
	ID   int    `col:"Company ID"`
}

var companies = []company{
	{Name: "Company 1", ID: 1},
	{Name: "Company 2", ID: 2},
}

var keyRegexp = regexp.MustCompile(`id="(df-[0-9a-f-]{36})"`)

func TestHint_EnableDisable(t *testing.T) {
	host := nbtable.NewHost()
	h := New[[]company](host)

	prior := nbtable.DisplayFormatterFunc(func(ctx context.Context, value any) (string, error) {
		return "<p>prior</p>", nil
	})
	host.DisplayFormatters().ForType(nbtable.MIMETextHTML, h.TableType(), prior)

	require.False(t, h.Enabled())
	require.NoError(t, h.Enable())
	require.True(t, h.Enabled())
	require.NoError(t, h.Enable(), "enabling an enabled hook does nothing")

	registered := host.DisplayFormatters().Lookup(nbtable.MIMETextHTML, h.TableType())
	require.Same(t, h, registered)

	require.NoError(t, h.Disable())
	require.False(t, h.Enabled())
	require.NoError(t, h.Disable(), "disabling a disabled hook does nothing")

	restored := host.DisplayFormatters().Lookup(nbtable.MIMETextHTML, h.TableType())
	require.NotNil(t, restored)
	str, err := restored.FormatDisplay(context.Background(), &companies)
	require.NoError(t, err)
	require.Equal(t, "<p>prior</p>", str, "Disable restores the displaced formatter")
}

func TestHint_FormatDisplay(t *testing.T) {
	ctx := context.Background()
	host := nbtable.NewHost()
	h := New[[]company](host).WithDocURL("https://example.com/interactive-tables")
	require.NoError(t, h.Enable())

	table := companies
	html, ok, err := host.DisplayFormatters().Format(ctx, nbtable.MIMETextHTML, &table)
	require.NoError(t, err)
	require.True(t, ok)

	matches := keyRegexp.FindStringSubmatch(html)
	require.Len(t, matches, 2, "output contains the container with the table key")
	key := matches[1]
	require.Equal(t, key, h.LastKey())
	require.Equal(t, 1, h.CachedTables())

	require.Contains(t, html, "<table>", "static table HTML")
	require.Contains(t, html, "<th>Company</th><th>Company ID</th>")
	require.Contains(t, html, fmt.Sprintf("convertToInteractive('%s')", key))
	require.Contains(t, html, "accessAllowed")
	require.Contains(t, html, "notebook.kernel.invokeFunction")
	require.Contains(t, html, "notebook.output.renderOutput")
	require.Contains(t, html, "interactive table notebook", "documentation link")
	require.Contains(t, html, "example.com")

	require.True(t, host.Callbacks().Registered("convertToInteractive"),
		"first display registers the conversion callback")

	runtime.KeepAlive(&table)
}

func TestHint_ConvertToInteractive(t *testing.T) {
	ctx := context.Background()
	host := nbtable.NewHost()
	h := New[[]company](host)
	require.NoError(t, h.Enable())

	table := companies
	_, ok, err := host.DisplayFormatters().Format(ctx, nbtable.MIMETextHTML, &table)
	require.NoError(t, err)
	require.True(t, ok)
	key := h.LastKey()
	require.NotEqual(t, "", key)

	// First conversion consumes the last displayed table copy
	data, err := host.Callbacks().Invoke(ctx, "convertToInteractive", key)
	require.NoError(t, err)
	interactive, _ := data[nbtable.MIMETextHTML].(string)
	require.Contains(t, interactive, `"rows":[["Company 1",1],["Company 2",2]]`)
	require.Equal(t, "", h.LastKey())

	// Second conversion consumes the weak cache entry
	data, err = host.Callbacks().Invoke(ctx, "convertToInteractive", key)
	require.NoError(t, err)
	require.Contains(t, data[nbtable.MIMETextHTML], `"rows":`)
	require.Equal(t, 0, h.CachedTables())

	// Third conversion finds no cached table anymore
	_, err = host.Callbacks().Invoke(ctx, "convertToInteractive", key)
	require.ErrorIs(t, err, ErrReferenceGone)

	runtime.KeepAlive(&table)
}

func TestHint_weakCacheEviction(t *testing.T) {
	ctx := context.Background()
	host := nbtable.NewHost()
	h := New[[]company](host)
	require.NoError(t, h.Enable())

	goneKey := displayUnreferenced(t, h)
	require.Equal(t, 1, h.CachedTables())

	// Displace the single entry cache so only the
	// weak cache can still reach the first table
	kept := companies
	_, err := h.FormatDisplay(ctx, &kept)
	require.NoError(t, err)
	require.Equal(t, 2, h.CachedTables())

	require.Eventually(t, func() bool {
		runtime.GC()
		return h.CachedTables() == 1
	}, 5*time.Second, 10*time.Millisecond,
		"entry of the collected table evicts itself")

	_, err = h.ConvertToInteractive(ctx, goneKey)
	require.ErrorIs(t, err, ErrReferenceGone)

	runtime.KeepAlive(&kept)
}

// displayUnreferenced displays a table that is not referenced
// anywhere after the call so it can be garbage collected.
func displayUnreferenced(t *testing.T, h *Hint[[]company]) (key string) {
	t.Helper()
	table := []company{{Name: "Company 3", ID: 3}}
	_, err := h.FormatDisplay(context.Background(), &table)
	require.NoError(t, err)
	return h.LastKey()
}

func TestHint_ConvertToInteractive_unknownKey(t *testing.T) {
	h := New[[]company](nbtable.NewHost())
	_, err := h.ConvertToInteractive(context.Background(), "df-unknown")
	require.ErrorIs(t, err, ErrReferenceGone)
}

func TestHint_staticRendererPrecedence(t *testing.T) {
	ctx := context.Background()

	t.Run("displaced formatter renders the static table", func(t *testing.T) {
		host := nbtable.NewHost()
		h := New[[]company](host)
		host.DisplayFormatters().ForType(nbtable.MIMETextHTML, h.TableType(),
			nbtable.DisplayFormatterFunc(func(ctx context.Context, value any) (string, error) {
				return "<p>displaced static</p>", nil
			}))
		require.NoError(t, h.Enable())

		html, err := h.FormatDisplay(ctx, &companies)
		require.NoError(t, err)
		require.Contains(t, html, "<p>displaced static</p>")
		require.NotContains(t, html, "<table>")
	})

	t.Run("configured renderer wins over displaced formatter", func(t *testing.T) {
		host := nbtable.NewHost()
		h := New[[]company](host).
			WithStaticRenderer(nbtable.RendererFunc[*[]company](
				func(ctx context.Context, dest io.Writer, table *[]company, caption ...string) error {
					_, err := io.WriteString(dest, "<p>configured static</p>")
					return err
				}))
		host.DisplayFormatters().ForType(nbtable.MIMETextHTML, h.TableType(),
			nbtable.DisplayFormatterFunc(func(ctx context.Context, value any) (string, error) {
				return "<p>displaced static</p>", nil
			}))
		require.NoError(t, h.Enable())

		html, err := h.FormatDisplay(ctx, &companies)
		require.NoError(t, err)
		require.Contains(t, html, "<p>configured static</p>")
		require.NotContains(t, html, "displaced")
	})
}

func TestHint_extraButtons(t *testing.T) {
	host := nbtable.NewHost()
	h := New[[]company](host).
		WithExtraButtons(template.HTML(`<button class="extra">More</button>`))
	require.NoError(t, h.Enable())

	html, err := h.FormatDisplay(context.Background(), &companies)
	require.NoError(t, err)
	require.Contains(t, html, `<button class="extra">More</button>`)
}

func TestHint_FormatDisplay_boxedValue(t *testing.T) {
	host := nbtable.NewHost()
	h := New[[]company](host)
	require.NoError(t, h.Enable())

	// Non-pointer values get boxed so the last
	// displayed table stays convertible.
	html, err := h.FormatDisplay(context.Background(), companies)
	require.NoError(t, err)
	require.Contains(t, html, "<table>")

	data, err := h.ConvertToInteractive(context.Background(), h.LastKey())
	require.NoError(t, err)
	require.Contains(t, data[nbtable.MIMETextHTML], `"rows":`)
}

func TestHint_FormatDisplay_wrongType(t *testing.T) {
	h := New[[]company](nbtable.NewHost())
	_, err := h.FormatDisplay(context.Background(), 666)
	require.Error(t, err)
}
