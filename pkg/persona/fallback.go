package persona

import "strings"

// Bucket is a keyword classification of the entry text.
type Bucket string

const (
	BucketNegative Bucket = "negative"
	BucketPositive Bucket = "positive"
	BucketEffort   Bucket = "effort"
	BucketFood     Bucket = "food"
	BucketLove     Bucket = "love"
	BucketNeutral  Bucket = "neutral"
)

// bucketOrder fixes the classification precedence. First bucket with a
// keyword hit wins; it is not a best-match scheme.
var bucketOrder = []Bucket{BucketNegative, BucketPositive, BucketEffort, BucketFood, BucketLove}

var bucketKeywords = map[Bucket][]string{
	BucketNegative: {"疲れた", "つらい", "死にたい", "失敗", "嫌", "悲しい", "怒", "最悪", "泣", "不安"},
	BucketPositive: {"楽しい", "嬉しい", "最高", "成功", "好き", "愛", "良かっ", "笑", "ハッピー"},
	BucketEffort:   {"頑張", "勉強", "仕事", "練習", "努力", "目標", "挑戦"},
	BucketFood:     {"食べ", "美味しい", "お腹", "ラーメン", "肉", "酒", "ごはん"},
	BucketLove:     {"恋", "愛", "デート", "彼氏", "彼女", "結婚", "推し"},
}

// NoResponse is returned when the persona has no canned table at all.
const NoResponse = "...（返答なし）"

var cannedResponses = map[string]map[Bucket]string{
	"teacher": {
		BucketNegative: "辛い時は無理せず休むのも勇気ですよ。",
		BucketPositive: "素晴らしい！その意気です。",
		BucketEffort:   "努力は必ず報われますよ。",
		BucketNeutral:  "なるほど、記録しておくことは大切ですね。",
	},
	"friend": {
		BucketNegative: "えー大丈夫？話聞くよ！",
		BucketPositive: "最高じゃん！",
		BucketEffort:   "えらすぎ！",
		BucketNeutral:  "そっかそっか〜。",
	},
	"lover": {
		BucketNegative: "大丈夫？飛んでいこうか？",
		BucketPositive: "君が笑顔なら僕も幸せだ。",
		BucketEffort:   "頑張り屋な君が好きだよ。",
		BucketNeutral:  "君のことを知れて嬉しいよ。",
	},
	"aunt": {
		BucketNegative: "ちゃんとご飯食べて寝なさいよ！",
		BucketPositive: "あらよかったじゃない！",
		BucketEffort:   "根詰めすぎちゃだめよ。",
		BucketNeutral:  "たまには顔見せなさいね。",
	},
	"celeb": {
		BucketNegative: "Rainy days make flowers grow.",
		BucketPositive: "Excellent!",
		BucketEffort:   "Dream big.",
		BucketNeutral:  "Keep it cool.",
	},
	"isekai": {
		BucketNegative: "心の闇が広がっているな...",
		BucketPositive: "光の加護があらんことを！",
		BucketEffort:   "修練か、悪くない。",
		BucketNeutral:  "異界の日常とは興味深い。",
	},
}

// Classify maps entry text to a bucket: first declared bucket with at least
// one keyword hit, neutral when nothing matches.
func Classify(text string) Bucket {
	t := strings.ToLower(text)
	for _, b := range bucketOrder {
		for _, kw := range bucketKeywords[b] {
			if strings.Contains(t, kw) {
				return b
			}
		}
	}
	return BucketNeutral
}

// Fallback is the deterministic offline reply used whenever the generative
// path fails. It is pure and never fails: a persona without an entry for the
// matched bucket gets its neutral line, and an unknown persona gets the
// NoResponse placeholder.
func Fallback(text, personaID string) string {
	table, ok := cannedResponses[personaID]
	if !ok {
		return NoResponse
	}
	if reply, ok := table[Classify(text)]; ok {
		return reply
	}
	if reply, ok := table[BucketNeutral]; ok {
		return reply
	}
	return NoResponse
}
