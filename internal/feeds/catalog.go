package feeds

// defaultCatalog is the built-in primary feed list. Hong Kong sources carry
// country "hk" with a topical category; sources without an obvious feed rely
// on the parser's discovery and HTML fallbacks.
var defaultCatalog = []Descriptor{
	{URL: "https://feeds.bbci.co.uk/news/technology/rss.xml", Source: "BBC Technology", Category: "technology"},
	{URL: "https://feeds.bbci.co.uk/news/world/rss.xml", Source: "BBC World", Category: "world"},
	{URL: "https://rss.nytimes.com/services/xml/rss/nyt/Technology.xml", Source: "NYTimes Technology", Category: "technology", Country: "us"},
	{URL: "https://rss.nytimes.com/services/xml/rss/nyt/World.xml", Source: "NYTimes World", Category: "world"},
	{URL: "https://rss.nytimes.com/services/xml/rss/nyt/Business.xml", Source: "NYTimes Business", Category: "business", Country: "us"},
	{URL: "https://www.theguardian.com/world/rss", Source: "The Guardian World", Category: "world"},
	{URL: "https://www.theguardian.com/uk/technology/rss", Source: "The Guardian Technology", Category: "technology"},
	{URL: "https://feeds.arstechnica.com/arstechnica/index", Source: "Ars Technica", Category: "technology", Country: "us"},
	{URL: "https://www.aljazeera.com/xml/rss/all.xml", Source: "Al Jazeera", Category: "world"},
	{URL: "https://feeds.skynews.com/feeds/rss/world.xml", Source: "Sky News World", Category: "world"},
	{URL: "https://feeds.a.dj.com/rss/RSSWorldNews.xml", Source: "WSJ World", Category: "world"},
	{URL: "https://feeds.a.dj.com/rss/WSJcomUSBusiness.xml", Source: "WSJ Business", Category: "business", Country: "us"},
	{URL: "https://www.economist.com/finance-and-economics/rss.xml", Source: "The Economist Finance", Category: "economy"},
	{URL: "https://feeds.reuters.com/reuters/worldNews", Source: "Reuters World", Category: "world"},
	{URL: "https://apnews.com/hub/apf-topnews?output=rss", Source: "AP News", Category: "general"},
	{URL: "https://www.cnbc.com/id/100003114/device/rss/rss.html", Source: "CNBC Top News", Category: "business"},
	{URL: "https://feeds.feedburner.com/Techcrunch", Source: "TechCrunch", Category: "technology"},
	{URL: "https://www.theverge.com/rss/index.xml", Source: "The Verge", Category: "technology", Country: "us"},
	{URL: "https://www.wired.com/feed/rss", Source: "WIRED", Category: "technology", Country: "us"},
	{URL: "https://www.washingtonpost.com/rss/world/", Source: "Washington Post World", Category: "world", Country: "us"},

	// Hong Kong
	{URL: "https://rthk.hk/rthk/news/rss/c_expressnews_clocal.xml", Source: "RTHK 即時本地", Category: "local", Country: "hk"},
	{URL: "https://www.scmp.com/rss/91/feed", Source: "SCMP Hong Kong", Category: "local", Country: "hk"},
	{URL: "https://www.scmp.com/rss/2/feed", Source: "SCMP International", Category: "world", Country: "hk"},
	{URL: "https://hongkongfp.com/feed/", Source: "Hong Kong Free Press", Category: "local", Country: "hk"},
	{URL: "https://news.mingpao.com/rss/ins/all.xml", Source: "明報 即時", Category: "local", Country: "hk"},
	{URL: "https://www.thestandard.com.hk/rss/instant-news/", Source: "The Standard 即時", Category: "local", Country: "hk"},
	{URL: "https://news.now.com/rss/local", Source: "Now News 本地", Category: "local", Country: "hk"},
	{URL: "https://www.hk01.com/rss", Source: "HK01", Category: "local", Country: "hk"},
	{URL: "https://www.hket.com/rss.xml", Source: "經濟日報", Category: "economy", Country: "hk"},
	{URL: "https://finance.now.com/news/rss/finance_rss.xml", Source: "Now 財經", Category: "finance", Country: "hk"},
	{URL: "https://unwire.hk/feed/", Source: "Unwire.hk", Category: "technology", Country: "hk"},
	{URL: "https://www.singtao.com/", Source: "星島日報", Category: "local", Country: "hk"},
	{URL: "https://www.on.cc/", Source: "東方日報", Category: "local", Country: "hk"},
	{URL: "https://www.hkej.com/", Source: "信報財經新聞", Category: "finance", Country: "hk"},
	{URL: "https://www.am730.com.hk/", Source: "AM730", Category: "local", Country: "hk"},
	{URL: "https://hk.news.yahoo.com/", Source: "Yahoo 香港新聞", Category: "general", Country: "hk"},

	// North America
	{URL: "https://www.cbc.ca/webfeed/rss/rss-topstories", Source: "CBC Canada", Category: "world", Country: "ca"},
	{URL: "https://www.ctvnews.ca/rss/ctvnews-ca-canada-public-rss-1.822295", Source: "CTV Canada", Category: "world", Country: "ca"},
	{URL: "https://globalnews.ca/feed/", Source: "Global News Canada", Category: "world", Country: "ca"},
	{URL: "https://www.theglobeandmail.com/arc/outboundfeeds/rss/?outputType=xml", Source: "The Globe and Mail", Category: "world", Country: "ca"},
	{URL: "https://financialpost.com/feed/", Source: "Financial Post", Category: "finance", Country: "ca"},

	// Europe
	{URL: "https://www.bbc.co.uk/news/uk/rss.xml", Source: "BBC UK", Category: "world", Country: "gb"},
	{URL: "https://feeds.bbci.co.uk/news/business/rss.xml", Source: "BBC Business", Category: "business", Country: "gb"},
	{URL: "https://feeds.bbci.co.uk/news/science_and_environment/rss.xml", Source: "BBC Science", Category: "science", Country: "gb"},
	{URL: "https://www.lemonde.fr/rss/une.xml", Source: "Le Monde", Category: "world", Country: "fr"},
	{URL: "https://www.lemonde.fr/technologies/rss_full.xml", Source: "Le Monde Tech", Category: "technology", Country: "fr"},
	{URL: "https://newsfeed.zeit.de/index", Source: "Die Zeit", Category: "world", Country: "de"},
	{URL: "https://www.handelsblatt.com/contentexport/feed/top-themen", Source: "Handelsblatt", Category: "economy", Country: "de"},
	{URL: "https://rss.dw.com/rdf/rss-en-all", Source: "DW (EN)", Category: "world", Country: "de"},
	{URL: "https://www.repubblica.it/rss/tecnologia/rss2.0.xml", Source: "La Repubblica Tech", Category: "technology", Country: "it"},
	{URL: "https://www.ansa.it/sito/ansait_rss.xml", Source: "ANSA", Category: "world", Country: "it"},
	{URL: "https://feeds.elpais.com/mrss-s/pages/ep/site/elpais.com/portada", Source: "El País", Category: "world", Country: "es"},
	{URL: "https://elpais.com/tecnologia/rss/", Source: "El País Tecnologia", Category: "technology", Country: "es"},

	// Asia-Pacific
	{URL: "https://www.theguardian.com/au/rss", Source: "The Guardian AU", Category: "world", Country: "au"},
	{URL: "https://www.abc.net.au/news/feed/51120/rss.xml", Source: "ABC Australia", Category: "world", Country: "au"},
	{URL: "https://www.rnz.co.nz/rss", Source: "RNZ", Category: "world", Country: "nz"},
	{URL: "https://www3.nhk.or.jp/nhkworld/en/news/rss/", Source: "NHK World", Category: "world", Country: "jp"},
	{URL: "https://www.asahi.com/rss/asahi/newsheadlines.rdf", Source: "Asahi Shimbun", Category: "world", Country: "jp"},
	{URL: "https://asia.nikkei.com/rss/feed/nar", Source: "Nikkei Asia", Category: "world", Country: "jp"},
	{URL: "https://rss.japantimes.co.jp/rss/feed/top_news.rss", Source: "Japan Times Top", Category: "world", Country: "jp"},
	{URL: "https://www.koreaherald.com/rss/0201.xml", Source: "Korea Herald", Category: "world", Country: "kr"},
	{URL: "https://www.koreatimes.co.kr/www/rss/nation.xml", Source: "Korea Times Nation", Category: "world", Country: "kr"},
	{URL: "https://www.straitstimes.com/news/world/rss.xml", Source: "Straits Times World", Category: "world", Country: "sg"},
	{URL: "https://www.channelnewsasia.com/api/v1/rss-outbound-feed?_format=xml", Source: "CNA", Category: "world", Country: "sg"},
	{URL: "https://www.techinasia.com/feed", Source: "Tech in Asia", Category: "technology", Country: "sg"},
	{URL: "https://www.taipeitimes.com/rss/front", Source: "Taipei Times", Category: "world", Country: "tw"},
	{URL: "https://www.ithome.com.tw/rss", Source: "iThome TW", Category: "technology", Country: "tw"},
	{URL: "https://www.bangkokpost.com/rss/data/topstories.xml", Source: "Bangkok Post", Category: "world", Country: "th"},
	{URL: "https://e.vnexpress.net/rss", Source: "VnExpress", Category: "world", Country: "vn"},
	{URL: "https://www.gmanetwork.com/news/rss/news/", Source: "GMA News", Category: "world", Country: "ph"},
	{URL: "https://www.thejakartapost.com/rss", Source: "Jakarta Post", Category: "world", Country: "id"},
	{URL: "https://www.themalaysianinsight.com/rss/", Source: "Malaysian Insight", Category: "world", Country: "my"},

	// Middle East
	{URL: "https://english.alarabiya.net/.mrss/en/english.xml", Source: "Al Arabiya", Category: "world", Country: "sa"},
	{URL: "https://www.timesofisrael.com/feed/", Source: "Times of Israel", Category: "world", Country: "il"},
}

// defaultSupplemental indexes backfill feeds by coverage group.
var defaultSupplemental = map[string][]Descriptor{
	"country:ca": {
		{URL: "https://www.cbc.ca/webfeed/rss/rss-topstories", Source: "CBC Canada", Category: "world", Country: "ca"},
		{URL: "https://globalnews.ca/feed/", Source: "Global News Canada", Category: "world", Country: "ca"},
	},
	"country:gb": {
		{URL: "https://www.bbc.co.uk/news/uk/rss.xml", Source: "BBC UK", Category: "world", Country: "gb"},
	},
	"country:au": {
		{URL: "https://www.abc.net.au/news/feed/51120/rss.xml", Source: "ABC Australia", Category: "world", Country: "au"},
	},
	"country:nz": {
		{URL: "https://www.rnz.co.nz/rss", Source: "RNZ", Category: "world", Country: "nz"},
	},
	"country:jp": {
		{URL: "https://www3.nhk.or.jp/nhkworld/en/news/rss/", Source: "NHK World", Category: "world", Country: "jp"},
		{URL: "https://asia.nikkei.com/rss/feed/nar", Source: "Nikkei Asia", Category: "world", Country: "jp"},
	},
	"country:sg": {
		{URL: "https://www.straitstimes.com/news/world/rss.xml", Source: "Straits Times World", Category: "world", Country: "sg"},
	},
	"country:hk": {
		{URL: "https://www.scmp.com/rss/2/feed", Source: "SCMP International", Category: "world", Country: "hk"},
		{URL: "https://www.hket.com/rss.xml", Source: "經濟日報", Category: "economy", Country: "hk"},
		{URL: "https://finance.now.com/news/rss/finance_rss.xml", Source: "Now 財經", Category: "finance", Country: "hk"},
	},
	"lang:en": {
		{URL: "https://feeds.reuters.com/reuters/worldNews", Source: "Reuters World", Category: "world"},
		{URL: "https://www.theguardian.com/world/rss", Source: "The Guardian World", Category: "world"},
	},
	"lang:zh": {
		{URL: "https://rthk.hk/rthk/news/rss/c_expressnews_clocal.xml", Source: "RTHK 即時本地", Category: "local", Country: "hk"},
		{URL: "https://news.mingpao.com/rss/ins/all.xml", Source: "明報 即時", Category: "local", Country: "hk"},
		{URL: "https://unwire.hk/feed/", Source: "Unwire.hk", Category: "technology", Country: "hk"},
		{URL: "https://www.hket.com/rss.xml", Source: "經濟日報", Category: "economy", Country: "hk"},
	},
	"lang:ja": {
		{URL: "https://www.asahi.com/rss/asahi/newsheadlines.rdf", Source: "Asahi Shimbun", Category: "world", Country: "jp"},
		{URL: "https://www3.nhk.or.jp/nhkworld/ja/news/rss/", Source: "NHK 日本語", Category: "world", Country: "jp"},
	},
	"lang:fr": {
		{URL: "https://www.lemonde.fr/rss/une.xml", Source: "Le Monde", Category: "world", Country: "fr"},
	},
	"lang:de": {
		{URL: "https://rss.dw.com/rdf/rss-de-all", Source: "DW (DE)", Category: "world", Country: "de"},
		{URL: "https://newsfeed.zeit.de/index", Source: "Die Zeit", Category: "world", Country: "de"},
	},
	"lang:es": {
		{URL: "https://feeds.elpais.com/mrss-s/pages/ep/site/elpais.com/portada", Source: "El País", Category: "world", Country: "es"},
	},
	"lang:it": {
		{URL: "https://www.ansa.it/sito/ansait_rss.xml", Source: "ANSA", Category: "world", Country: "it"},
	},
}
