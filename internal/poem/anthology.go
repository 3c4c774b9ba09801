package poem

// anthology is the bundled offline collection, used when no poem
// provider is wired in. All entries are public-domain classical verse.
var anthology = []Poem{
	{
		MainText: "床前明月光，疑是地上霜。举头望明月，低头思故乡。",
		Title:    "静夜思",
		Author:   "李白",
	},
	{
		MainText: "春眠不觉晓，处处闻啼鸟。夜来风雨声，花落知多少。",
		Title:    "春晓",
		Author:   "孟浩然",
	},
	{
		MainText: "白日依山尽，黄河入海流。欲穷千里目，更上一层楼。",
		Title:    "登鹳雀楼",
		Author:   "王之涣",
	},
	{
		MainText: "千山鸟飞绝，万径人踪灭。孤舟蓑笠翁，独钓寒江雪。",
		Title:    "江雪",
		Author:   "柳宗元",
	},
	{
		MainText: "空山新雨后，天气晚来秋。明月松间照，清泉石上流。",
		Title:    "山居秋暝",
		Author:   "王维",
	},
	{
		MainText: "好雨知时节，当春乃发生。随风潜入夜，润物细无声。",
		Title:    "春夜喜雨",
		Author:   "杜甫",
	},
	{
		MainText: "葡萄美酒夜光杯，欲饮琵琶马上催。醉卧沙场君莫笑，古来征战几人回？",
		Title:    "凉州词",
		Author:   "王翰",
	},
	{
		MainText: "月落乌啼霜满天，江枫渔火对愁眠。姑苏城外寒山寺，夜半钟声到客船。",
		Title:    "枫桥夜泊",
		Author:   "张继",
	},
	{
		MainText: "独在异乡为异客，每逢佳节倍思亲。遥知兄弟登高处，遍插茱萸少一人。",
		Title:    "九月九日忆山东兄弟",
		Author:   "王维",
	},
	{
		MainText: "桃花潭水深千尺，不及汪伦送我情。",
		Title:    "赠汪伦",
		Author:   "李白",
	},
	{
		MainText: "春江潮水连海平，海上明月共潮生。滟滟随波千万里，何处春江无月明。",
		Title:    "春江花月夜",
		Author:   "张若虚",
	},
	{
		MainText: "人生若只如初见，何事秋风悲画扇。",
		Title:    "木兰花令",
		Author:   "纳兰性德",
	},
}

// Anthology returns the bundled poems.
func Anthology() []Poem {
	out := make([]Poem, len(anthology))
	copy(out, anthology)
	return out
}

// PickBySeed deterministically selects an anthology entry for a seed.
func PickBySeed(seed int64) Poem {
	n := int64(len(anthology))
	i := seed % n
	if i < 0 {
		i += n
	}
	return anthology[i]
}
