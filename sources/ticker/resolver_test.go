package ticker

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/finpipe/core"
	"github.com/gaurav-prasanna/finpipe/sources/sourcestest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// searchPage lays out a search response the way Naver Finance does: the
// domestic table in the fourth div of #content, the overseas one in the eighth.
func searchPage(script, domesticRows, overseasRows string) string {
	return fmt.Sprintf(`<html><head><script>%s</script></head><body>
<div id="content">
  <div>tabs</div><div>summary</div><div>notice</div>
  <div class="section_search"><table>
    <tr><th>종목명</th><th>현재가</th></tr>
    %s
  </table></div>
  <div>5</div><div>6</div><div>7</div>
  <div class="section_overseas"><table><tbody>%s</tbody></table></div>
</div></body></html>`, script, domesticRows, overseasRows)
}

func domesticRow(code, name string) string {
	return fmt.Sprintf(`<tr><td class="tit"><a href="/item/main.naver?code=%s">%s</a></td><td>1,000</td></tr>`, code, name)
}

const detailPage = `<html><body><div id="middle"><div class="h_company"><h2><a href="#">%s</a></h2></div></div></body></html>`

func newResolver(t *testing.T) (*Resolver, *sourcestest.Server) {
	t.Helper()
	srv := sourcestest.NewServer(t)
	return New(srv.Toolkit()), srv
}

func TestResolver_SearchDomestic_ResultTable(t *testing.T) {
	r, srv := newResolver(t)
	srv.Handle(searchPath, sourcestest.EUCKR(t, searchPage("", domesticRow("005930", "Samsung Electronics"), "")))

	got := r.SearchDomestic(context.Background(), "005930")

	assert.Equal(t, []core.TickerMatch{{Code: "005930", Name: "Samsung Electronics", Market: core.MarketDomestic}}, got)
}

func TestResolver_SearchDomestic_KoreanNames(t *testing.T) {
	r, srv := newResolver(t)
	rows := domesticRow("005930", "삼성전자") + domesticRow("005935", "삼성전자우")
	srv.Handle(searchPath, sourcestest.EUCKR(t, searchPage("", rows, "")))

	got := r.SearchDomestic(context.Background(), "삼성전자")

	require.Len(t, got, 2)
	assert.Equal(t, "삼성전자", got[0].Name)
	assert.Equal(t, "005935", got[1].Code)
}

func TestResolver_SearchDomestic_ScriptRedirect(t *testing.T) {
	r, srv := newResolver(t)
	srv.Handle(searchPath, sourcestest.EUCKR(t, searchPage("location.href = '/item/main?code=080160';", "", "")))
	srv.Handle("/item/main", sourcestest.HTML(fmt.Sprintf(detailPage, "HD Hyundai")))

	got := r.SearchDomestic(context.Background(), "HD현대")

	assert.Equal(t, []core.TickerMatch{{Code: "080160", Name: "HD Hyundai", Market: core.MarketDomestic}}, got)
	assert.Equal(t, 1, srv.Hits("/item/main"))
}

func TestResolver_SearchDomestic_RedirectBeatsTable(t *testing.T) {
	r, srv := newResolver(t)
	page := searchPage(`location.href = "/item/main?code=080160"`, domesticRow("005930", "Samsung Electronics"), "")
	srv.Handle(searchPath, sourcestest.EUCKR(t, page))
	srv.Handle("/item/main", sourcestest.HTML(fmt.Sprintf(detailPage, "HD Hyundai")))

	got := r.SearchDomestic(context.Background(), "x")

	require.Len(t, got, 1)
	assert.Equal(t, "080160", got[0].Code)
}

func TestResolver_SearchDomestic_RedirectFailureIsEmpty(t *testing.T) {
	r, srv := newResolver(t)
	page := searchPage("location.href = '/item/main?code=080160';", domesticRow("005930", "Samsung Electronics"), "")
	srv.Handle(searchPath, sourcestest.EUCKR(t, page))
	srv.Handle("/item/main", sourcestest.Status(http.StatusInternalServerError))

	got := r.SearchDomestic(context.Background(), "x")

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, 1, srv.Hits(searchPath))
}

func TestResolver_SearchDomestic_RedirectOffOriginIsEmpty(t *testing.T) {
	r, srv := newResolver(t)
	page := searchPage("location.href = 'https://elsewhere.example/item/main?code=080160';", domesticRow("005930", "Samsung Electronics"), "")
	srv.Handle(searchPath, sourcestest.EUCKR(t, page))

	got := r.SearchDomestic(context.Background(), "x")

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestResolver_SearchDomestic_RedirectWithoutHeadingIsEmpty(t *testing.T) {
	r, srv := newResolver(t)
	srv.Handle(searchPath, sourcestest.EUCKR(t, searchPage("location.href = '/item/main?code=080160';", "", "")))
	srv.Handle("/item/main", sourcestest.HTML(`<html><body><p>moved</p></body></html>`))

	assert.Empty(t, r.SearchDomestic(context.Background(), "x"))
}

func TestResolver_SearchDomestic_RedirectWithoutCodeIgnored(t *testing.T) {
	r, srv := newResolver(t)
	page := searchPage("location.href = '/sise/';", domesticRow("005930", "Samsung Electronics"), "")
	srv.Handle(searchPath, sourcestest.EUCKR(t, page))

	got := r.SearchDomestic(context.Background(), "x")

	require.Len(t, got, 1)
	assert.Equal(t, "005930", got[0].Code)
}

func TestResolver_SearchDomestic_SingleResultPage(t *testing.T) {
	r, srv := newResolver(t)
	page := `<html><body><input type="hidden" id="code" value="000660">` +
		`<div id="middle"><h2><a href="#">SK hynix</a></h2></div></body></html>`
	srv.Handle(searchPath, sourcestest.EUCKR(t, page))

	got := r.SearchDomestic(context.Background(), "하이닉스")

	assert.Equal(t, []core.TickerMatch{{Code: "000660", Name: "SK hynix", Market: core.MarketDomestic}}, got)
}

func TestResolver_SearchDomestic_SkipsMalformedRows(t *testing.T) {
	r, srv := newResolver(t)
	var rows strings.Builder
	codes := []string{"000001", "000002", "000003", "000004", "000005"}
	for i, c := range codes {
		rows.WriteString(domesticRow(c, fmt.Sprintf("Company %d", i+1)))
		if i == 1 {
			rows.WriteString(`<tr><td><a href="/sise/sise_index.naver">KOSPI</a></td></tr>`)
		}
		if i == 3 {
			rows.WriteString(`<tr><td>no link here</td></tr>`)
		}
	}
	srv.Handle(searchPath, sourcestest.EUCKR(t, searchPage("", rows.String(), "")))

	got := r.SearchDomestic(context.Background(), "company")

	require.Len(t, got, 5)
	for i, m := range got {
		assert.Equal(t, codes[i], m.Code)
		assert.Equal(t, fmt.Sprintf("Company %d", i+1), m.Name)
	}
}

func TestResolver_SearchDomestic_KeepsDuplicates(t *testing.T) {
	r, srv := newResolver(t)
	rows := domesticRow("005930", "A") + domesticRow("005930", "A")
	srv.Handle(searchPath, sourcestest.EUCKR(t, searchPage("", rows, "")))

	assert.Len(t, r.SearchDomestic(context.Background(), "a"), 2)
}

func TestResolver_SearchDomestic_CollapsesWhitespace(t *testing.T) {
	r, srv := newResolver(t)
	rows := `<tr><td><a href="/item/main.naver?code=005930">  Samsung
	   Electronics </a></td></tr>`
	srv.Handle(searchPath, sourcestest.EUCKR(t, searchPage("", rows, "")))

	got := r.SearchDomestic(context.Background(), "a")

	require.Len(t, got, 1)
	assert.Equal(t, "Samsung Electronics", got[0].Name)
}

func TestResolver_SearchOverseas(t *testing.T) {
	r, srv := newResolver(t)
	overseas := `<tr><td><a href="https://m.stock.naver.com/worldstock/stock/AAPL.O/total">Apple</a></td></tr>` +
		`<tr><td><a href="/somewhere">not a stock</a></td></tr>` +
		`<tr><td><a href="https://m.stock.naver.com/worldstock/stock/MSFT.O/total">Microsoft</a></td></tr>`
	srv.Handle(searchPath, sourcestest.EUCKR(t, searchPage("", domesticRow("005930", "Samsung Electronics"), overseas)))

	got := r.SearchOverseas(context.Background(), "tech")

	assert.Equal(t, []core.TickerMatch{
		{Code: "AAPL", Name: "Apple", Market: core.MarketOverseas},
		{Code: "MSFT", Name: "Microsoft", Market: core.MarketOverseas},
	}, got)
}

func TestResolver_Search_BothPassesOneFetch(t *testing.T) {
	r, srv := newResolver(t)
	overseas := `<tr><td><a href="https://m.stock.naver.com/worldstock/stock/TSLA.O/total">Tesla</a></td></tr>`
	srv.Handle(searchPath, sourcestest.EUCKR(t, searchPage("", domesticRow("005930", "Samsung Electronics"), overseas)))

	got := r.Search(context.Background(), "x")

	require.Len(t, got.Domestic, 1)
	require.Len(t, got.Overseas, 1)
	assert.Equal(t, "TSLA", got.Overseas[0].Code)
	assert.Equal(t, 1, srv.Hits(searchPath))
}

func TestResolver_Search_HTTPErrorIsEmpty(t *testing.T) {
	r, srv := newResolver(t)
	srv.Handle(searchPath, sourcestest.Status(http.StatusInternalServerError))

	got := r.Search(context.Background(), "005930")

	assert.NotNil(t, got.Domestic)
	assert.NotNil(t, got.Overseas)
	assert.Empty(t, got.Domestic)
	assert.Empty(t, got.Overseas)
}

func TestResolver_Search_EmptyPage(t *testing.T) {
	r, srv := newResolver(t)
	srv.Handle(searchPath, sourcestest.EUCKR(t, `<html><body><p>검색 결과가 없습니다</p></body></html>`))

	got := r.Search(context.Background(), "zzz")

	assert.Empty(t, got.Domestic)
	assert.Empty(t, got.Overseas)
}

func TestResolver_Search_BlankQuerySkipsFetch(t *testing.T) {
	r, srv := newResolver(t)

	got := r.Search(context.Background(), "   ")

	assert.Empty(t, got.Domestic)
	assert.Equal(t, 0, srv.Hits(searchPath))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Shape
	}{
		{"redirect", searchPage("location.href='/item/main?code=080160'", domesticRow("1", "a"), ""), ShapeScriptRedirect},
		{"single", `<input id="code" value="000660"><div id="middle"><h2><a>SK</a></h2></div>`, ShapeSingleResult},
		{"table", searchPage("", domesticRow("005930", "a"), ""), ShapeResultTable},
		{"code field without heading", `<input id="code" value="000660">`, ShapeEmpty},
		{"nothing", `<p>none</p>`, ShapeEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := sourcestest.NewServer(t)
			srv.Handle("/p", sourcestest.HTML(tt.body))
			r := New(srv.Toolkit())
			page := r.Page(context.Background(), srv.URL+"/p", core.AutoDetect)
			require.NotNil(t, page)
			assert.Equal(t, tt.want, Classify(page))
		})
	}
	assert.Equal(t, ShapeEmpty, Classify(nil))
}
