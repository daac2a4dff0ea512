package csvblocks

// SampleCSV is a two-section example in the layout the classifier expects:
// a blank separator row, a header row, then title, image and body rows.
// The image rows carry an unterminated quoted note, which the tokenizer
// closes at the end of the line.
const SampleCSV = `,,,,,,,,,,,,,,,,,,,,,,,,,,,
,テストタイトルテストタイトル,,,,,,,,,,,,,,,,,,,,,,,,,,
,テストタイトル,タイトルタイトルタイトルタイトル
,コンテンツ1　画像パス,/hoge/test1.jpg,"※img-2の画像（右側の画像）を挿入したいです
,テキスト,テキストテキストテキストテキスト
,,,,,,,,,,,,,,,,,,,,,,,,,,,
,テストタイトルテストタイトル,,,,,,,,,,,,,,,,,,,,,,,,,,
,テストタイトル,タイトルタイトルタイトルタイトル2
,コンテンツ1　画像パス,/hoge/test2.jpg,"※img-2の画像（右側の画像）を挿入したいです
,本文,テキストテキストテキストテキスト2`
