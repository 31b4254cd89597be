package books

// canon is the 66-book Protestant canon in order. The last alias of each
// book is its Tamil name.
var canon = []Book{
	// Old Testament
	{Code: "GEN", Name: "Genesis", Aliases: []string{"gen", "ge", "gn", "ஆதியாகமம்"}},
	{Code: "EXO", Name: "Exodus", Aliases: []string{"exo", "ex", "exod", "யாத்திராகமம்"}},
	{Code: "LEV", Name: "Leviticus", Aliases: []string{"lev", "le", "லேவியராகமம்"}},
	{Code: "NUM", Name: "Numbers", Aliases: []string{"num", "nu", "எண்ணாகமம்"}},
	{Code: "DEU", Name: "Deuteronomy", Aliases: []string{"deu", "dt", "deut", "உபாகமம்"}},
	{Code: "JOS", Name: "Joshua", Aliases: []string{"jos", "josh", "யோசுவா"}},
	{Code: "JDG", Name: "Judges", Aliases: []string{"jdg", "judg", "jd", "நியாயாதிபதிகள்"}},
	{Code: "RUT", Name: "Ruth", Aliases: []string{"rut", "ru", "ரூத்"}},
	{Code: "1SA", Name: "1 Samuel", Aliases: []string{"1 samuel", "1 sam", "1sa", "1sam", "1 சாமுவேல்"}},
	{Code: "2SA", Name: "2 Samuel", Aliases: []string{"2 samuel", "2 sam", "2sa", "2sam", "2 சாமுவேல்"}},
	{Code: "1KI", Name: "1 Kings", Aliases: []string{"1 kings", "1 ki", "1kings", "1kgs", "1 இராஜாக்கள்"}},
	{Code: "2KI", Name: "2 Kings", Aliases: []string{"2 kings", "2 ki", "2kings", "2kgs", "2 இராஜாக்கள்"}},
	{Code: "1CH", Name: "1 Chronicles", Aliases: []string{"1 chronicles", "1 chr", "1ch", "1chr", "1 நாளாகமம்"}},
	{Code: "2CH", Name: "2 Chronicles", Aliases: []string{"2 chronicles", "2 chr", "2ch", "2chr", "2 நாளாகமம்"}},
	{Code: "EZR", Name: "Ezra", Aliases: []string{"ezr", "ezra", "எஸ்றா"}},
	{Code: "NEH", Name: "Nehemiah", Aliases: []string{"neh", "nehemiah", "நெகேமியா"}},
	{Code: "EST", Name: "Esther", Aliases: []string{"est", "esther", "esth", "எஸ்தர்"}},
	{Code: "JOB", Name: "Job", Aliases: []string{"job", "யோபு"}},
	{Code: "PSA", Name: "Psalms", Aliases: []string{"psalm", "psalms", "ps", "psa", "சங்கீதம்"}},
	{Code: "PRO", Name: "Proverbs", Aliases: []string{"proverbs", "prov", "prv", "pro", "நீதிமொழிகள்"}},
	{Code: "ECC", Name: "Ecclesiastes", Aliases: []string{"ecclesiastes", "ecc", "ec", "eccl", "qoh", "பிரசங்கி"}},
	{Code: "SNG", Name: "Song of Songs", Aliases: []string{"song of songs", "song of solomon", "songs", "song", "sos", "sng", "உன்னதப்பாட்டு"}},
	{Code: "ISA", Name: "Isaiah", Aliases: []string{"isaiah", "isa", "is", "ஏசாயா"}},
	{Code: "JER", Name: "Jeremiah", Aliases: []string{"jeremiah", "jer", "je", "எரேமியா"}},
	{Code: "LAM", Name: "Lamentations", Aliases: []string{"lamentations", "lam", "புலம்பல்"}},
	{Code: "EZK", Name: "Ezekiel", Aliases: []string{"ezekiel", "ezk", "eze", "ezek", "எசேக்கியேல்"}},
	{Code: "DAN", Name: "Daniel", Aliases: []string{"daniel", "dan", "da", "தானியேல்"}},
	{Code: "HOS", Name: "Hosea", Aliases: []string{"hosea", "hos", "ho", "ஓசியா"}},
	{Code: "JOL", Name: "Joel", Aliases: []string{"joel", "jol", "jl", "யோவேல்"}},
	{Code: "AMO", Name: "Amos", Aliases: []string{"amos", "amo", "am", "ஆமோஸ்"}},
	{Code: "OBA", Name: "Obadiah", Aliases: []string{"obadiah", "oba", "ob", "obad", "ஒபதியா"}},
	{Code: "JON", Name: "Jonah", Aliases: []string{"jonah", "jon", "jh", "யோனா"}},
	{Code: "MIC", Name: "Micah", Aliases: []string{"micah", "mic", "mc", "மீகா"}},
	{Code: "NAM", Name: "Nahum", Aliases: []string{"nahum", "nam", "na", "nah", "நாகூம்"}},
	{Code: "HAB", Name: "Habakkuk", Aliases: []string{"habakkuk", "hab", "ஆபகூக்"}},
	{Code: "ZEP", Name: "Zephaniah", Aliases: []string{"zephaniah", "zep", "zp", "zeph", "செப்பனியா"}},
	{Code: "HAG", Name: "Haggai", Aliases: []string{"haggai", "hag", "hg", "ஆகாய்"}},
	{Code: "ZEC", Name: "Zechariah", Aliases: []string{"zechariah", "zec", "zc", "zech", "சகரியா"}},
	{Code: "MAL", Name: "Malachi", Aliases: []string{"malachi", "mal", "ml", "மல்கியா"}},

	// New Testament
	{Code: "MAT", Name: "Matthew", Aliases: []string{"matthew", "matt", "mat", "mt", "மத்தேயு"}},
	{Code: "MRK", Name: "Mark", Aliases: []string{"mark", "mrk", "mk", "மாற்கு"}},
	{Code: "LUK", Name: "Luke", Aliases: []string{"luke", "luk", "lk", "லூக்கா"}},
	{Code: "JHN", Name: "John", Aliases: []string{"john", "jhn", "jn", "joh", "யோவான்"}},
	{Code: "ACT", Name: "Acts", Aliases: []string{"acts", "act", "ac", "அப்போஸ்தலர்"}},
	{Code: "ROM", Name: "Romans", Aliases: []string{"romans", "rom", "ro", "ரோமர்"}},
	{Code: "1CO", Name: "1 Corinthians", Aliases: []string{"1 corinthians", "1 cor", "1co", "1cor", "1 கொரிந்தியர்"}},
	{Code: "2CO", Name: "2 Corinthians", Aliases: []string{"2 corinthians", "2 cor", "2co", "2cor", "2 கொரிந்தியர்"}},
	{Code: "GAL", Name: "Galatians", Aliases: []string{"galatians", "gal", "ga", "கலாத்தியர்"}},
	{Code: "EPH", Name: "Ephesians", Aliases: []string{"ephesians", "eph", "ep", "எபேசியர்"}},
	{Code: "PHP", Name: "Philippians", Aliases: []string{"philippians", "php", "phil", "பிலிப்பியர்"}},
	{Code: "COL", Name: "Colossians", Aliases: []string{"colossians", "col", "கொலோசெயர்"}},
	{Code: "1TH", Name: "1 Thessalonians", Aliases: []string{"1 thessalonians", "1 thess", "1th", "1thess", "1 தெசலோனிக்கேயர்"}},
	{Code: "2TH", Name: "2 Thessalonians", Aliases: []string{"2 thessalonians", "2 thess", "2th", "2thess", "2 தெசலோனிக்கேயர்"}},
	{Code: "1TI", Name: "1 Timothy", Aliases: []string{"1 timothy", "1 tim", "1ti", "1tim", "1 தீமோத்தேயு"}},
	{Code: "2TI", Name: "2 Timothy", Aliases: []string{"2 timothy", "2 tim", "2ti", "2tim", "2 தீமோத்தேயு"}},
	{Code: "TIT", Name: "Titus", Aliases: []string{"titus", "tit", "ti", "தீத்து"}},
	{Code: "PHM", Name: "Philemon", Aliases: []string{"philemon", "phm", "pm", "phlm", "பிலேமோன்"}},
	{Code: "HEB", Name: "Hebrews", Aliases: []string{"hebrews", "heb", "எபிரெயர்"}},
	{Code: "JAS", Name: "James", Aliases: []string{"james", "jas", "jm", "யாக்கோபு"}},
	{Code: "1PE", Name: "1 Peter", Aliases: []string{"1 peter", "1 pet", "1pe", "1pet", "1 பேதுரு"}},
	{Code: "2PE", Name: "2 Peter", Aliases: []string{"2 peter", "2 pet", "2pe", "2pet", "2 பேதுரு"}},
	{Code: "1JN", Name: "1 John", Aliases: []string{"1 john", "1 jn", "1jn", "1john", "1 யோவான்"}},
	{Code: "2JN", Name: "2 John", Aliases: []string{"2 john", "2 jn", "2jn", "2john", "2 யோவான்"}},
	{Code: "3JN", Name: "3 John", Aliases: []string{"3 john", "3 jn", "3jn", "3john", "3 யோவான்"}},
	{Code: "JUD", Name: "Jude", Aliases: []string{"jude", "jud", "யூதா"}},
	{Code: "REV", Name: "Revelation", Aliases: []string{"revelation", "rev", "re", "வெளிப்படுத்தின விசேஷம்"}},
}
