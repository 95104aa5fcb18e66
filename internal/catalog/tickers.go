package catalog

import (
	"net/url"

	"SectorSentinel/internal/model"
)

const quoteBaseURL = "https://finance.yahoo.co.jp/quote/"

// constituents lists each sector's basket: five large caps, then five
// small/mid caps.
var constituents = map[model.SectorID][]model.Ticker{
	model.SectorAIRobot: {
		{Symbol: "9984.T", Name: "ソフトバンクG"}, {Symbol: "6861.T", Name: "キーエンス"},
		{Symbol: "6954.T", Name: "ファナック"}, {Symbol: "6273.T", Name: "SMC"},
		{Symbol: "6645.T", Name: "オムロン"},
		{Symbol: "3993.T", Name: "PKSHA"}, {Symbol: "4180.T", Name: "Appier"},
		{Symbol: "247A.T", Name: "Aiロボティクス"}, {Symbol: "4382.T", Name: "HEROZ"},
		{Symbol: "4011.T", Name: "ヘッドウォータース"},
	},
	model.SectorQuantum: {
		{Symbol: "6702.T", Name: "富士通"}, {Symbol: "6701.T", Name: "NEC"},
		{Symbol: "9432.T", Name: "NTT"}, {Symbol: "6501.T", Name: "日立製作所"},
		{Symbol: "6503.T", Name: "三菱電機"},
		{Symbol: "3687.T", Name: "フィックスターズ"}, {Symbol: "6597.T", Name: "HPCシステムズ"},
		{Symbol: "6521.T", Name: "オキサイド"}, {Symbol: "7713.T", Name: "シグマ光機"},
		{Symbol: "2693.T", Name: "YKT"},
	},
	model.SectorSemi: {
		{Symbol: "8035.T", Name: "東京エレクトロン"}, {Symbol: "6857.T", Name: "アドバンテスト"},
		{Symbol: "4063.T", Name: "信越化学"}, {Symbol: "6146.T", Name: "ディスコ"},
		{Symbol: "6920.T", Name: "レーザーテック"},
		{Symbol: "6323.T", Name: "ローツェ"}, {Symbol: "6315.T", Name: "TOWA"},
		{Symbol: "4369.T", Name: "トリケミカル"}, {Symbol: "6871.T", Name: "日本マイクロニクス"},
		{Symbol: "6266.T", Name: "タツモ"},
	},
	model.SectorBio: {
		{Symbol: "4519.T", Name: "中外製薬"}, {Symbol: "4568.T", Name: "第一三共"},
		{Symbol: "4502.T", Name: "武田薬品"}, {Symbol: "4578.T", Name: "大塚HD"},
		{Symbol: "4503.T", Name: "アステラス製薬"},
		{Symbol: "4587.T", Name: "ペプチドリーム"}, {Symbol: "2160.T", Name: "GNIグループ"},
		{Symbol: "4552.T", Name: "JCRファーマ"}, {Symbol: "4592.T", Name: "サンバイオ"},
		{Symbol: "4599.T", Name: "ステムリム"},
	},
	model.SectorFusion: {
		{Symbol: "7013.T", Name: "IHI"}, {Symbol: "5802.T", Name: "住友電気工業"},
		{Symbol: "5803.T", Name: "フジクラ"}, {Symbol: "5801.T", Name: "古河電気工業"},
		{Symbol: "1963.T", Name: "日揮HD"},
		{Symbol: "5310.T", Name: "東洋炭素"}, {Symbol: "7711.T", Name: "助川電気工業"},
		{Symbol: "3446.T", Name: "ジェイテック"}, {Symbol: "6378.T", Name: "木村化工機"},
		{Symbol: "6864.T", Name: "エヌエフHD"},
	},
	model.SectorSpace: {
		{Symbol: "7011.T", Name: "三菱重工業"}, {Symbol: "7012.T", Name: "川崎重工業"},
		{Symbol: "9412.T", Name: "スカパーJSAT"}, {Symbol: "7751.T", Name: "キヤノン"},
		{Symbol: "9433.T", Name: "KDDI"},
		{Symbol: "9348.T", Name: "ispace"}, {Symbol: "5595.T", Name: "QPS研究所"},
		{Symbol: "186A.T", Name: "アストロスケール"}, {Symbol: "290A.T", Name: "Synspective"},
		{Symbol: "402A.T", Name: "アクセルスペース"},
	},
}

var names = func() map[string]string {
	m := make(map[string]string)
	for _, list := range constituents {
		for _, t := range list {
			m[t.Symbol] = t.Name
		}
	}
	return m
}()

// Resolve returns the display name for symbol, or symbol itself when unknown.
func Resolve(symbol string) string {
	if name, ok := names[symbol]; ok {
		return name
	}
	return symbol
}

// Constituents returns a copy of the basket tracked for id.
func Constituents(id model.SectorID) []model.Ticker {
	list := constituents[id]
	out := make([]model.Ticker, len(list))
	copy(out, list)
	return out
}

// QuoteURL links a symbol to its Yahoo! Finance Japan quote page.
func QuoteURL(symbol string) string {
	return quoteBaseURL + url.PathEscape(symbol)
}
