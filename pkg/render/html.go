package render

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/iWorld-y/market_radar/pkg/model"
)

// researchEntry 按查询排序后的调研条目，避免 map 遍历顺序不稳定
type researchEntry struct {
	Query   string
	Results []model.ResearchResult
}

// htmlData 模板渲染的数据
type htmlData struct {
	Doc      *model.AnalysisDocument
	Date     string
	Research []researchEntry
}

// WriteHTML 将分析文档渲染为自包含的 HTML 报告
// 只读消费：任何分区缺内容时渲染空块，不会失败
func WriteHTML(w io.Writer, doc *model.AnalysisDocument) error {
	t, err := template.New("analysis").Funcs(template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	}).Parse(htmlTpl)
	if err != nil {
		return err
	}

	entries := make([]researchEntry, 0, len(doc.Research))
	for q, results := range doc.Research {
		entries = append(entries, researchEntry{Query: q, Results: results})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Query < entries[j].Query })

	data := htmlData{
		Doc:      doc,
		Date:     doc.Provenance.GeneratedAt.Format("2006-01-02"),
		Research: entries,
	}
	return t.Execute(w, data)
}

// WriteHTMLFile 渲染到指定路径，按需创建目录
func WriteHTMLFile(path string, doc *model.AnalysisDocument) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return WriteHTML(f, doc)
}

const htmlTpl = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Market Radar | {{ .Doc.Request.Segment }}</title>
    <style>
        :root {
            --primary-color: #2563eb;
            --bg-color: #f8fafc;
            --card-bg: #ffffff;
            --text-main: #1e293b;
            --text-secondary: #64748b;
            --border-color: #e2e8f0;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            background-color: var(--bg-color);
            color: var(--text-main);
            line-height: 1.6;
            margin: 0;
            padding: 20px;
        }
        .container { max-width: 900px; margin: 0 auto; }
        header { text-align: center; margin-bottom: 40px; padding: 20px 0; }
        h1 { font-size: 2.2rem; margin: 0 0 10px 0; }
        .date-info { color: var(--text-secondary); }
        .origin-badge { display: inline-block; padding: 4px 12px; border-radius: 20px; font-weight: bold; background: #dcfce7; color: #166534; }
        .origin-fallback { background: #fee2e2; color: #991b1b; }
        .origin-partially-generated { background: #fef9c3; color: #854d0e; }
        .card {
            background: var(--card-bg);
            border-radius: 12px;
            padding: 24px;
            margin-bottom: 30px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.05);
            border: 1px solid var(--border-color);
        }
        .card h2 { margin-top: 0; border-bottom: 2px solid var(--primary-color); padding-bottom: 8px; display: inline-block; }
        .card h3 { color: #475569; }
        table { border-collapse: collapse; width: 100%; }
        th, td { text-align: left; padding: 8px 12px; border-bottom: 1px solid #f1f5f9; }
        th { color: var(--text-secondary); font-size: 0.85rem; text-transform: uppercase; }
        ul { padding-left: 20px; }
        li { margin-bottom: 6px; }
        .ref-list { list-style: none; padding: 0; font-size: 0.9rem; }
        .ref-list a { color: var(--primary-color); text-decoration: none; }
        .ref-query { font-weight: bold; color: var(--text-secondary); margin: 10px 0 4px; }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>📡 Market Analysis: {{ .Doc.Request.Segment }}</h1>
            <div class="date-info">{{ .Date }} • {{ .Doc.Request.Product }}</div>
            <div class="origin-badge origin-{{ .Doc.Provenance.Origin }}">{{ .Doc.Provenance.Origin }}</div>
        </header>

        <div class="card">
            <h2>🎯 Market Scope</h2>
            <p>{{ .Doc.Scope.ValueProposition }}</p>
            <h3>Subsegments</h3>
            <ul>{{ range .Doc.Scope.Subsegments }}<li>{{ . }}</li>{{ end }}</ul>
            <table>
                <tr><th>TAM</th><th>SAM</th><th>SOM</th></tr>
                <tr><td>{{ money .Doc.Scope.MarketSize.TAM }}</td><td>{{ money .Doc.Scope.MarketSize.SAM }}</td><td>{{ money .Doc.Scope.MarketSize.SOM }}</td></tr>
            </table>
        </div>

        <div class="card">
            <h2>👤 Avatar</h2>
            <p><strong>{{ .Doc.Avatar.Persona.Name }}</strong> — {{ .Doc.Avatar.Persona.Age }}, {{ .Doc.Avatar.Persona.Occupation }}, {{ .Doc.Avatar.Persona.Location }}</p>
            <h3>Demographics</h3>
            <ul>
                <li>Age: {{ .Doc.Avatar.Demographics.PrimaryAgeRange }}</li>
                <li>Gender: {{ .Doc.Avatar.Demographics.GenderSplit }}</li>
                <li>Regions: {{ .Doc.Avatar.Demographics.Regions }}</li>
            </ul>
            <h3>Core values</h3>
            <ul>{{ range .Doc.Avatar.Psychographics.CoreValues }}<li>{{ . }}</li>{{ end }}</ul>
            <h3>Fears</h3>
            <ul>{{ range .Doc.Avatar.Psychographics.Fears }}<li>{{ . }}</li>{{ end }}</ul>
        </div>

        <div class="card">
            <h2>🔥 Pain Map</h2>
            <h3>Critical</h3>
            <ul>{{ range .Doc.PainMap.Critical }}<li>{{ .Description }} ({{ .Intensity }}, {{ .Frequency }})</li>{{ end }}</ul>
            <h3>Secondary</h3>
            <ul>{{ range .Doc.PainMap.Secondary }}<li>{{ .Description }} ({{ .Intensity }}, {{ .Frequency }})</li>{{ end }}</ul>
        </div>

        <div class="card">
            <h2>⚔️ Competition</h2>
            {{ range .Doc.Competition.DirectCompetitors }}
            <p><strong>{{ .Name }}</strong> ({{ .PriceRange }}) — {{ .Positioning }}</p>
            {{ end }}
            <h3>Gaps</h3>
            <ul>{{ range .Doc.Competition.Gaps }}<li>{{ . }}</li>{{ end }}</ul>
        </div>

        <div class="card">
            <h2>🧲 Acquisition</h2>
            <table>
                <tr><th>Keyword</th><th>Volume</th><th>Difficulty</th><th>Est. CPC</th><th>Opportunity</th></tr>
                {{ range .Doc.Acquisition.PrimaryKeywords }}
                <tr><td>{{ .Term }}</td><td>{{ .MonthlyVolume }}</td><td>{{ .Difficulty }}</td><td>{{ money .EstimatedCPC }}</td><td>{{ .Opportunity }}</td></tr>
                {{ end }}
            </table>
            <table>
                <tr><th>Channel</th><th>Avg CPC</th><th>CTR</th><th>Est. CPA</th></tr>
                <tr><td>Google Ads</td><td>{{ money .Doc.Acquisition.GoogleAds.AvgCPC }}</td><td>{{ .Doc.Acquisition.GoogleAds.ExpectedCTR }}</td><td>{{ money .Doc.Acquisition.GoogleAds.EstimatedCPA }}</td></tr>
                <tr><td>Facebook Ads</td><td>{{ money .Doc.Acquisition.FacebookAds.AvgCPC }}</td><td>{{ .Doc.Acquisition.FacebookAds.ExpectedCTR }}</td><td>{{ money .Doc.Acquisition.FacebookAds.EstimatedCPA }}</td></tr>
            </table>
        </div>

        <div class="card">
            <h2>📈 Projections</h2>
            <table>
                <tr><th>Scenario</th><th>Conversion</th><th>Avg Ticket</th><th>CAC</th><th>ROI %</th></tr>
                <tr><td>Conservative</td><td>{{ .Doc.Projections.Conservative.ConversionRate }}%</td><td>{{ money .Doc.Projections.Conservative.AvgTicket }}</td><td>{{ money .Doc.Projections.Conservative.CAC }}</td><td>{{ .Doc.Projections.Conservative.ROI }}</td></tr>
                <tr><td>Realistic</td><td>{{ .Doc.Projections.Realistic.ConversionRate }}%</td><td>{{ money .Doc.Projections.Realistic.AvgTicket }}</td><td>{{ money .Doc.Projections.Realistic.CAC }}</td><td>{{ .Doc.Projections.Realistic.ROI }}</td></tr>
                <tr><td>Optimistic</td><td>{{ .Doc.Projections.Optimistic.ConversionRate }}%</td><td>{{ money .Doc.Projections.Optimistic.AvgTicket }}</td><td>{{ money .Doc.Projections.Optimistic.CAC }}</td><td>{{ .Doc.Projections.Optimistic.ROI }}</td></tr>
            </table>
            <h3>Action plan</h3>
            {{ range .Doc.Projections.ActionPlan }}
            <p><strong>{{ .Name }}</strong> ({{ .Duration }})</p>
            <ul>{{ range .Actions }}<li>{{ .Action }} — {{ .Owner }}, {{ .Deadline }}</li>{{ end }}</ul>
            {{ end }}
            <h3>Insights</h3>
            <ul>{{ range .Doc.Projections.Insights }}<li>{{ . }}</li>{{ end }}</ul>
        </div>

        {{ if .Research }}
        <div class="card">
            <h2>🔗 Research Sources</h2>
            {{ range .Research }}
            <div class="ref-query">{{ .Query }}</div>
            <ul class="ref-list">
                {{ range .Results }}
                <li><a href="{{ .URL }}" target="_blank">{{ .Title }}</a></li>
                {{ end }}
            </ul>
            {{ end }}
        </div>
        {{ end }}
    </div>
</body>
</html>
`
