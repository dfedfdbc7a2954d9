package fnguide

import (
	"context"
	"net/http"
	"testing"

	"github.com/gaurav-prasanna/finpipe/config"
	"github.com/gaurav-prasanna/finpipe/sources"
	"github.com/gaurav-prasanna/finpipe/sources/sourcestest"
	"github.com/stretchr/testify/assert"
)

const snapshotRoute = "/SVO2/ASP/SVD_Main.asp"

func TestParser_Report_Snapshot(t *testing.T) {
	srv := sourcestest.NewServer(t)
	srv.Handle(snapshotRoute, sourcestest.HTML(`<html><body><div id="header">menu</div>
<div id="compBody"><h2>Samsung Electronics</h2>
<p>Market cap <a href="SVD_Finance.asp?pGB=1&gicode=A005930">details</a></p></div></body></html>`))
	p := New(srv.Toolkit())

	got := p.Report(context.Background(), Snapshot, "005930")

	assert.Contains(t, got, "## Samsung Electronics")
	assert.Contains(t, got, "Market cap")
	assert.NotContains(t, got, "SVD_Finance.asp")
	assert.NotContains(t, got, "menu")
	assert.Equal(t, 1, srv.Hits(snapshotRoute))
}

func TestParser_Report_DisclosuresUseSecondBlock(t *testing.T) {
	srv := sourcestest.NewServer(t)
	srv.Handle("/SVO2/ASP/SVD_Disclosure.asp", sourcestest.HTML(`<div id="compBody">
<div>tabs</div><div><p>Quarterly report filed</p></div></div>`))
	p := New(srv.Toolkit())

	got := p.Report(context.Background(), Disclosures, "005930")

	assert.Equal(t, "Quarterly report filed", got)
}

func TestParser_Report_Unavailable(t *testing.T) {
	srv := sourcestest.NewServer(t)
	srv.Handle("/SVO2/ASP/SVD_Finance.asp", sourcestest.Status(http.StatusInternalServerError))
	srv.Handle("/SVO2/ASP/SVD_Corp.asp", sourcestest.HTML(`<div id="other">no body</div>`))
	p := New(srv.Toolkit())

	assert.Empty(t, p.Report(context.Background(), Financials, "005930"))
	assert.Empty(t, p.Report(context.Background(), Overview, "005930"))
}

func TestParser_Report_EmptyTickerSkipsFetch(t *testing.T) {
	srv := sourcestest.NewServer(t)
	p := New(srv.Toolkit())

	assert.Empty(t, p.Report(context.Background(), Snapshot, ""))
	assert.Empty(t, p.Report(context.Background(), Report(99), "005930"))
	assert.Equal(t, 0, srv.Hits("/SVO2/ASP/SVD_Main.asp"))
}

func TestParser_reportURL(t *testing.T) {
	p := New(sources.Toolkit{Endpoints: config.DefaultEndpoints()})

	got := p.reportURL("SVD_Main.asp", "005930")

	assert.Equal(t, "https://comp.fnguide.com/SVO2/ASP/SVD_Main.asp?pGB=1&gicode=A005930&cID=&MenuYn=Y&ReportGB=&NewMenuID=101&stkGb=701", got)
}

func TestClean(t *testing.T) {
	in := "[chart](javascript:;) and [ratio](SVD_FinanceRatio.asp?gicode=A005930) stay [home](https://comp.fnguide.com/)"

	got := Clean(in)

	assert.Equal(t, "[chart] and [ratio] stay [home](https://comp.fnguide.com/)", got)
}

func TestReport_String(t *testing.T) {
	names := map[string]bool{}
	for _, r := range Reports() {
		names[r.String()] = true
		_, _, ok := page(r)
		assert.True(t, ok, r.String())
	}
	assert.Len(t, names, len(Reports()))
	assert.Equal(t, "report(99)", Report(99).String())
}
