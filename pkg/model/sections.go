package model

// MarketSize 市场规模估算（单位与请求货币一致）
type MarketSize struct {
	TAM float64 `json:"tam"`
	SAM float64 `json:"sam"`
	SOM float64 `json:"som"`
}

// ScopeSection 阶段 1：市场切入与机会
type ScopeSection struct {
	PrimarySegment   string     `json:"primary_segment"`
	Subsegments      []string   `json:"subsegments"`
	IdealProduct     string     `json:"ideal_product"`
	ValueProposition string     `json:"value_proposition"`
	MarketSize       MarketSize `json:"market_size"`
}

// Persona 虚构的典型用户画像
type Persona struct {
	Name          string `json:"name"`
	Age           string `json:"age"`
	Occupation    string `json:"occupation"`
	MonthlyIncome string `json:"monthly_income"`
	Location      string `json:"location"`
	MaritalStatus string `json:"marital_status"`
	Education     string `json:"education"`
}

// Demographics 人口统计分布
type Demographics struct {
	PrimaryAgeRange string `json:"primary_age_range"`
	GenderSplit     string `json:"gender_split"`
	Regions         string `json:"regions"`
	SocialClasses   string `json:"social_classes"`
	EducationLevels string `json:"education_levels"`
}

// Psychographics 心理画像
type Psychographics struct {
	CoreValues  []string `json:"core_values"`
	Lifestyle   string   `json:"lifestyle"`
	Personality string   `json:"personality"`
	Aspirations []string `json:"aspirations"`
	Fears       []string `json:"fears"`
	Motivators  []string `json:"motivators"`
}

// AvatarSection 阶段 2：超详细用户画像
type AvatarSection struct {
	Persona        Persona        `json:"persona"`
	Demographics   Demographics   `json:"demographics"`
	Psychographics Psychographics `json:"psychographics"`
}

// Pain 单条痛点
type Pain struct {
	Description string `json:"description"`
	Intensity   string `json:"intensity"`
	Frequency   string `json:"frequency"`
	LifeImpact  string `json:"life_impact"`
	Awareness   string `json:"awareness"`
}

// PainMapSection 阶段 3：痛点分层映射
type PainMapSection struct {
	Critical  []Pain `json:"critical"`
	Secondary []Pain `json:"secondary"`
}

// Competitor 单个竞争对手
type Competitor struct {
	Name             string   `json:"name"`
	PriceRange       string   `json:"price_range"`
	ValueProposition string   `json:"value_proposition"`
	Strengths        []string `json:"strengths"`
	Weaknesses       []string `json:"weaknesses"`
	Positioning      string   `json:"positioning"`
}

// CompetitionSection 阶段 4：竞争格局
type CompetitionSection struct {
	DirectCompetitors []Competitor `json:"direct_competitors"`
	Gaps              []string     `json:"gaps"`
}

// Keyword 关键词机会
type Keyword struct {
	Term          string  `json:"term"`
	MonthlyVolume string  `json:"monthly_volume"`
	Difficulty    string  `json:"difficulty"`
	EstimatedCPC  float64 `json:"estimated_cpc"`
	Opportunity   string  `json:"opportunity"`
}

// ChannelCost 单渠道获客成本
type ChannelCost struct {
	AvgCPC       float64 `json:"avg_cpc"`
	ExpectedCTR  string  `json:"expected_ctr"`
	EstimatedCPA float64 `json:"estimated_cpa"`
}

// AcquisitionSection 阶段 5：关键词与获客策略
type AcquisitionSection struct {
	PrimaryKeywords []Keyword   `json:"primary_keywords"`
	GoogleAds       ChannelCost `json:"google_ads"`
	FacebookAds     ChannelCost `json:"facebook_ads"`
}

// Benchmarks 细分市场基准指标
type Benchmarks struct {
	AvgCAC    float64 `json:"avg_cac"`
	AvgLTV    float64 `json:"avg_ltv"`
	ChurnRate string  `json:"churn_rate"`
	AvgTicket float64 `json:"avg_ticket"`
}

// Scenario 单个收入情景推演
type Scenario struct {
	ConversionRate float64 `json:"conversion_rate"`
	AvgTicket      float64 `json:"avg_ticket"`
	CAC            float64 `json:"cac"`
	ROI            float64 `json:"roi"`
}

// ActionItem 行动计划中的单个动作
type ActionItem struct {
	Action   string `json:"action"`
	Owner    string `json:"owner"`
	Deadline string `json:"deadline"`
}

// ActionPhase 行动计划中的一个阶段
type ActionPhase struct {
	Name     string       `json:"name"`
	Duration string       `json:"duration"`
	Actions  []ActionItem `json:"actions"`
}

// ProjectionsSection 阶段 6：指标、情景推演与行动计划
type ProjectionsSection struct {
	Benchmarks   Benchmarks    `json:"benchmarks"`
	Conservative Scenario      `json:"conservative"`
	Realistic    Scenario      `json:"realistic"`
	Optimistic   Scenario      `json:"optimistic"`
	ActionPlan   []ActionPhase `json:"action_plan"`
	Insights     []string      `json:"insights"`
}
