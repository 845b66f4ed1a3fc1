package footer

import "golang.org/x/text/language"

// catalog holds the translated strings of the stock footer.
type catalog struct {
	lang language.Tag

	blurb            string
	emailPlaceholder string
	subscribe        string

	docs         string
	allDocs      string
	getStarted   string
	contributing string

	community string
	forum     string

	more  string
	wiki  string
	store string

	hostedOn  string
	holder    string
	copyright string
}

var _catalogs = []*catalog{
	{
		lang:             language.English,
		blurb:            "Want to receive the latest news and updates from the Blitz team? Sign up for our newsletter!",
		emailPlaceholder: "Enter your email",
		subscribe:        "Subscribe",
		docs:             "Docs",
		allDocs:          "All Docs",
		getStarted:       "Getting Started",
		contributing:     "Contributing",
		community:        "Community",
		forum:            "Forum Discussions",
		more:             "More",
		wiki:             "Wiki",
		store:            "Store",
		hostedOn:         "Hosted on",
		holder:           "Brandon Bayer and Blitz.js Contributors",
		copyright:        "Copyright © {year} {holder}",
	},
	{
		lang:             language.SimplifiedChinese,
		blurb:            "想要接收来自 Blitz 团队最新的新闻和更新？注册我们的新闻列表！",
		emailPlaceholder: "输入你的邮箱",
		subscribe:        "订阅",
		docs:             "文档",
		allDocs:          "所有文档",
		getStarted:       "开始入手",
		contributing:     "如何贡献",
		community:        "社区",
		forum:            "论坛讨论",
		more:             "其它",
		wiki:             "维基",
		store:            "商店",
		hostedOn:         "托管在",
		holder:           "Brandon Bayer 和 Blitz.js 贡献者们",
		copyright:        "Copyright © {year} {holder}",
	},
}

var _catalogMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(_catalogs))
	for i, c := range _catalogs {
		tags[i] = c.lang
	}
	return language.NewMatcher(tags)
}()

// lookupCatalog returns the catalog that best matches tag.
// English is used if nothing matches.
func lookupCatalog(tag language.Tag) *catalog {
	_, idx, _ := _catalogMatcher.Match(tag)
	return _catalogs[idx]
}

// Languages lists the languages the stock footer is available in.
func Languages() []language.Tag {
	tags := make([]language.Tag, len(_catalogs))
	for i, c := range _catalogs {
		tags[i] = c.lang
	}
	return tags
}
