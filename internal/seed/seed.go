// Package seed loads the default configuration rows: sources, doctrine
// rules, entity patterns, the sovereign term dictionary and the denylist.
// All seeding is idempotent; existing rows are updated, never duplicated.
package seed

import (
	"fmt"

	"intelwire/internal/core"
	"intelwire/internal/logger"
	"intelwire/internal/store"
)

// All seeds every default data set and returns the number of rows touched.
func All(st *store.Store) (int, error) {
	total := 0
	for _, step := range []struct {
		name string
		fn   func(*store.Store) (int, error)
	}{
		{"sources", Sources},
		{"classification rules", ClassificationRules},
		{"entity patterns", EntityPatterns},
		{"sovereign terms", SovereignTerms},
		{"denylist", Denylist},
	} {
		n, err := step.fn(st)
		if err != nil {
			return total, fmt.Errorf("failed to seed %s: %w", step.name, err)
		}
		logger.Info("seeded "+step.name, "count", n)
		total += n
	}
	return total, nil
}

// Sources installs the default feed roster.
func Sources(st *store.Store) (int, error) {
	defaults := []core.Source{
		{Name: "قناة العربية - الأخبار العاجلة", URL: "https://www.alarabiya.net/.mrss/ar/breaking-news.xml", ReliabilityScore: 90},
		{Name: "الجزيرة - الأخبار الرئيسية", URL: "https://www.aljazeera.net/aljazeerarss/a7c186be-1baa-4bd4-9d80-a84db769f779/73d0e1b4-532f-45ef-b135-bf70c53e4086", ReliabilityScore: 85},
		{Name: "سكاي نيوز عربية", URL: "https://www.skynewsarabia.com/web/rss", ReliabilityScore: 88},
		{Name: "BBC News - عربي", URL: "https://feeds.bbci.co.uk/arabic/rss.xml", ReliabilityScore: 95},
		{Name: "CNN بالعربية", URL: "https://arabic.cnn.com/api/v1/rss/headlines/index.xml", ReliabilityScore: 90},
		{Name: "Defense One (Global Defense)", URL: "https://www.defenseone.com/rss/all/", ReliabilityScore: 92},
		{Name: "Breaking Defense", URL: "https://breakingdefense.com/feed/", ReliabilityScore: 88},
		{Name: "Reuters - World News", URL: "https://www.reutersagency.com/feed/?best-topics=world&post_type=best", ReliabilityScore: 98},
		{Name: "The Guardian - World", URL: "https://www.theguardian.com/world/rss", ReliabilityScore: 90},
	}

	count := 0
	for _, src := range defaults {
		src.Type = core.SourceTypeFeed
		src.IsActive = true
		if _, err := st.GetOrCreateSourceByName(src.Name, src); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// ClassificationRules installs the sovereign doctrine rule set, highest
// weight first.
func ClassificationRules(st *store.Store) (int, error) {
	rules := []core.ClassificationRule{
		{
			Name:             "Threat to Leadership (تهديد القيادة)",
			Keywords:         "assassination,coup,overthrow,regime change,king,crown prince,royal family,اغتيال,انقلاب,إسقاط نظام,الملك,ولي العهد,الأسرة الحاكمة",
			RequiredKeywords: "plot,plan,attack,target,threat,مؤامرة,خطة,هجوم,استهداف,تهديد",
			Classification:   core.ClassTopSecret,
			Severity:         core.SeverityCritical,
			Topic:            "THREAT_LEADERSHIP",
			Weight:           100,
		},
		{
			Name:             "Ballistic/Drone Threat (تهديد صاروخي/مسيرات)",
			Keywords:         "missile,drone,uav,ballistic,houthi,intercepted,air defense,صاروخ,مسيرة,طائرة بدون طيار,باليستي,حوثي,اعتراض,دفاع جوي",
			RequiredKeywords: "attack,fired,launched,strike,target,هجوم,إطلاق,ضربة,استهداف",
			Classification:   core.ClassTopSecret,
			Severity:         core.SeverityCritical,
			Topic:            "MILITARY_OPS",
			Weight:           95,
		},
		{
			Name:             "Critical Infrastructure (البنية التحتية الحساسة)",
			Keywords:         "aramco,oil field,pipeline,refinery,desalination,power plant,airport,أرامكو,حقل نفط,أنبوب نفط,مصفاة,تحلية,محطة كهرباء,مطار",
			RequiredKeywords: "attack,fire,explosion,cyber,hack,breach,sabotage,هجوم,حريق,انفجار,سيبراني,اختراق,تخريب",
			Classification:   core.ClassSecret,
			Severity:         core.SeverityHigh,
			Topic:            "INFRASTRUCTURE",
			Weight:           90,
		},
		{
			Name:             "Border Security (أمن الحدود)",
			Keywords:         "border,infiltration,smuggling,clash,guard,حدود,تسلل,تهريب,اشتباك,حرس الحدود",
			RequiredKeywords: "killed,injured,arrest,weapon,drug,explosive,مقتل,إصابة,اعتقال,سلاح,مخدرات,متفجرات",
			Classification:   core.ClassConfidential,
			Severity:         core.SeverityHigh,
			Topic:            "BORDER_SECURITY",
			Weight:           85,
		},
		{
			Name:             "Vision 2030 Strategic (استراتيجية الرؤية)",
			Keywords:         "vision 2030,neom,the line,red sea project,qiddiya,roshn,pif,public investment fund,رؤية 2030,نيوم,ذا لاين,البحر الأحمر,القدية,روشن,صندوق الاستثمارات",
			RequiredKeywords: "launch,invest,partnership,agreement,ipo,إطلاق,استثمار,شراكة,اتفاقية,اكتتاب",
			Classification:   core.ClassConfidential,
			Severity:         core.SeverityLow,
			Topic:            "VISION_2030",
			Weight:           70,
		},
		{
			Name:             "Regional Instability (عدم استقرار إقليمي)",
			Keywords:         "yemen,iran,iraq,lebanon,syria,sudan,اليمن,إيران,العراق,لبنان,سوريا,السودان",
			RequiredKeywords: "protest,riot,war,conflict,militia,crisis,احتجاج,شغب,حرب,نزاع,ميليشيا,أزمة",
			Classification:   core.ClassRestricted,
			Severity:         core.SeverityMedium,
			Topic:            "REGIONAL_POLITICS",
			Weight:           60,
		},
		{
			Name:             "Anti-State Propaganda (دعاية معادية)",
			Keywords:         "human rights,activist,detained,freedom of speech,boycott,حقوق إنسان,ناشط,معتقل,حرية تعبير,مقاطعة",
			RequiredKeywords: "report,condemn,criticize,violation,تقرير,إدانة,انتقاد,انتهاك",
			Classification:   core.ClassRestricted,
			Severity:         core.SeverityLow,
			Topic:            "PROPAGANDA",
			Weight:           50,
		},
	}

	count := 0
	for _, rule := range rules {
		rule.IsActive = true
		if err := st.UpsertRule(rule); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// EntityPatterns installs the default extraction patterns.
func EntityPatterns(st *store.Store) (int, error) {
	patterns := []core.EntityPattern{
		{Pattern: "الرئيس", EntityType: core.EntityPerson},
		{Pattern: "الوزير", EntityType: core.EntityPerson},
		{Pattern: "الأمم المتحدة", EntityType: core.EntityOrganization},
		{Pattern: "مجلس الأمن", EntityType: core.EntityOrganization},
		{Pattern: "واشنطن", EntityType: core.EntityLocation},
		{Pattern: "الرياض", EntityType: core.EntityLocation},
		{Pattern: "القاهرة", EntityType: core.EntityLocation},
		{Pattern: "غزة", EntityType: core.EntityLocation},
		{Pattern: "كييف", EntityType: core.EntityLocation},
		{Pattern: "موسكو", EntityType: core.EntityLocation},
	}

	count := 0
	for _, p := range patterns {
		if err := st.UpsertEntityPattern(p); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// SovereignTerms installs the offline translation dictionary.
func SovereignTerms(st *store.Store) (int, error) {
	military := map[string]string{
		"war": "حرب", "battle": "معركة", "attack": "هجوم", "strike": "ضربة",
		"missile": "صاروخ", "drone": "طائرة مسيرة", "uav": "طائرة بدون طيار",
		"army": "الجيش", "navy": "البحرية", "air force": "القوات الجوية",
		"troops": "قوات", "soldiers": "جنود", "casualty": "إصابة",
		"killed": "مقتل", "dead": "قتلى", "weapon": "سلاح", "nuclear": "نووي",
		"atomic": "ذري", "ballistic": "باليستي", "defense": "دفاع",
		"security": "أمن", "intelligence": "استخبارات", "spy": "جاسوس",
		"terrorism": "إرهاب", "terrorist": "إرهابي", "militia": "ميليشيا",
		"insurgents": "متمردين", "base": "قاعدة", "operation": "عملية",
		"target": "هدف", "destroy": "تدمير", "launch": "إطلاق",
		"deployed": "نشر", "withdraw": "انسحاب", "peacekeeping": "حفظ السلام",
		"alliance": "تحالف", "coalition": "تحالف",
	}
	political := map[string]string{
		"president": "الرئيس", "prime minister": "رئيس الوزراء", "minister": "وزير",
		"king": "الملك", "prince": "الأمير", "crown prince": "ولي العهد",
		"government": "حكومة", "parliament": "برلمان", "election": "انتخابات",
		"vote": "تصويت", "treaty": "معاهدة", "agreement": "اتفاقية",
		"summit": "قمة", "conference": "مؤتمر", "diplomat": "دبلوماسي",
		"ambassador": "سفير", "foreign ministry": "وزارة الخارجية",
		"policy": "سياسة", "relations": "علاقات", "sanctions": "عقوبات",
		"united nations": "الأمم المتحدة", "security council": "مجلس الأمن",
		"eu": "الاتحاد الأوروبي", "nato": "الناتو",
	}
	geo := map[string]string{
		"saudi arabia": "المملكة العربية السعودية", "ksa": "السعودية", "riyadh": "الرياض",
		"yemen": "اليمن", "sanaa": "صنعاء", "houthi": "الحوثي",
		"iran": "إيران", "tehran": "طهران", "iraq": "العراق", "baghdad": "بغداد",
		"syria": "سوريا", "damascus": "دمشق", "lebanon": "لبنان", "beirut": "بيروت",
		"jordan": "الأردن", "amman": "عمان", "egypt": "مصر", "cairo": "القاهرة",
		"uae": "الإمارات", "dubai": "دبي", "qatar": "قطر", "doha": "الدوحة",
		"kuwait": "الكويت", "bahrain": "البحرين", "manama": "المنامة",
		"oman": "عمان", "muscat": "مسقط", "israel": "إسرائيل",
		"tel aviv": "تل أبيب", "jerusalem": "القدس", "gaza": "غزة",
		"west bank": "الضفة الغربية", "usa": "الولايات المتحدة", "washington": "واشنطن",
		"uk": "بريطانيا", "london": "لندن", "france": "فرنسا", "paris": "باريس",
		"germany": "ألمانيا", "berlin": "برلين", "russia": "روسيا",
		"moscow": "موسكو", "china": "الصين", "beijing": "بكين",
	}

	count := 0
	for category, terms := range map[string]map[string]string{
		"MILITARY":  military,
		"POLITICAL": political,
		"GENERAL":   geo,
	} {
		for english, arabic := range terms {
			err := st.UpsertSovereignTerm(core.SovereignTerm{
				EnglishTerm:       english,
				ArabicTranslation: arabic,
				Category:          category,
			})
			if err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

// Denylist installs the out-of-domain source keyword filters.
func Denylist(st *store.Store) (int, error) {
	keywords := []string{
		"nature.com", "medical", "health", "clinic", "science daily",
		"techcrunch", "gadget", "sports", "entertainment", "celebrity",
		"nature journal", "phys.org", "new scientist",
	}

	count := 0
	for _, kw := range keywords {
		if err := st.UpsertIgnoredKeyword(kw); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
