package seed

import "cyber_champions/internal/domain/model"

type AdminAccount struct {
	Username string
	Email    string
	Password string
}

type QuizSeed struct {
	Quiz      model.Quiz
	Questions []QuestionSeed
}

type QuestionSeed struct {
	Question      string
	Options       []string
	CorrectAnswer int
}

var Admin = AdminAccount{
	Username: "admin",
	Email:    "admin@cyber.uz",
	Password: "admin123",
}

var Competitions = []model.Competition{
	{
		Title:        "Milliy CTF Chempionati 2024",
		Type:         model.CompetitionCTF,
		Prize:        "$5,000",
		Description:  "O'zbekiston bo'ylab eng yaxshi hakerlar uchun. Web, Crypto, Reverse Engineering, PWN, Forensics yo'nalishlari.",
		TimeLeft:     "12:45:30",
		Participants: 423,
		Color:        "#00f3ff",
	},
	{
		Title:        "Bahor Bug Bounty Dasturi",
		Type:         model.CompetitionBugBounty,
		Prize:        "$10,000",
		Description:  "\"SecureBank\" tizimidagi zaifliklarni toping. SQL Injection, XSS, CSRF, Authentication bypass mukofotlari.",
		TimeLeft:     "20 kun qoldi",
		Participants: 187,
		Color:        "#ffd700",
	},
	{
		Title:        "Secure Code Warrior 2024",
		Type:         model.CompetitionCoding,
		Prize:        "$3,000",
		Description:  "Xavfsiz dasturlash bo'yicha musobaqa. Buffer overflow prevention, input validation, encryption algorithms.",
		TimeLeft:     "3:15:20",
		Participants: 312,
		Color:        "#00ff88",
	},
	{
		Title:        "Web Application Pentesting",
		Type:         model.CompetitionWebPentest,
		Prize:        "$7,500",
		Description:  "Real veb ilovalarni penetration testing qilish. OWASP Top 10 zaifliklarni exploit qilish va hisobot yozish.",
		TimeLeft:     "5 kun qoldi",
		Participants: 156,
		Color:        "#ff003c",
	},
}

var Leaderboard = []model.LeaderboardEntry{
	{Rank: 1, Name: "Sherxon Xudoyberdiyev", Username: "Sherxon_75", Score: 3450, Competitions: 8, Country: "UZ", Status: "online"},
	{Rank: 2, Name: "Ghost Hacker", Username: "ghost", Score: 2850, Competitions: 6, Country: "UZ", Status: "online"},
	{Rank: 3, Name: "Zero Cool", Username: "zerocool", Score: 2120, Competitions: 5, Country: "US", Status: "offline"},
	{Rank: 4, Name: "Crypto Master", Username: "crypto", Score: 1980, Competitions: 7, Country: "UZ", Status: "online"},
	{Rank: 5, Name: "Web Slayer", Username: "webslayer", Score: 1050, Competitions: 4, Country: "DE", Status: "offline"},
}

var Challenges = []model.Challenge{
	{
		ID:          "web-01",
		Title:       "Hidden in Plain Sight",
		Category:    "Web",
		Difficulty:  model.DifficultyEasy,
		Points:      100,
		Description: "Bizning yangi veb-saytimizda bir narsa yashiringan. Uni topa olasizmi? Saytning manba kodini (source code) tekshirib ko'ring.",
		Hint:        "Brauzerda Ctrl+U tugmasini bosing.",
		Flag:        "CTF{view_source_is_your_friend}",
	},
	{
		ID:          "crypto-01",
		Title:       "Caesar's Secret",
		Category:    "Cryptography",
		Difficulty:  model.DifficultyMedium,
		Points:      250,
		Description: "Ushbu shifrlangan xabarni yeching: \"Fvgf_pber_fgehpgher_vf_pelcgb\". Kalit: ROT13.",
		Hint:        "ROT13 - bu oddiy alifbo almashinuvi.",
		Flag:        "CTF{site_core_structure_is_crypto}",
	},
	{
		ID:          "rev-01",
		Title:       "Binary Ghost",
		Category:    "Reverse Engineering",
		Difficulty:  model.DifficultyHard,
		Points:      500,
		Description: "Ushbu kichik dastur ichida flag yashiringan. Dasturni tahlil qiling va flagni toping.",
		Hint:        "Ghidra yoki IDA Pro vositalaridan foydalaning.",
		Flag:        "CTF{b1nary_h4ck3r_2024}",
	},
}

var Quizzes = []QuizSeed{
	{
		Quiz: model.Quiz{
			ID:          "q1",
			Title:       "Web Security Fundamentals",
			Description: "OWASP Top 10, XSS, SQL Injection va CSRF asoslari.",
			Category:    "Web",
			MinScore:    70,
		},
		Questions: []QuestionSeed{
			{"Which attack injects malicious scripts into pages viewed by other users?", []string{"SQL Injection", "Cross-Site Scripting (XSS)", "CSRF", "Clickjacking"}, 1},
			{"What is the most effective defence against SQL Injection?", []string{"Input length limits", "Parameterized queries", "Hiding error messages", "Using POST instead of GET"}, 1},
			{"Which HTTP header helps mitigate clickjacking?", []string{"X-Frame-Options", "Content-Length", "Accept-Encoding", "ETag"}, 0},
			{"A CSRF token primarily protects against...", []string{"Password guessing", "Forged state-changing requests", "Session fixation", "Directory traversal"}, 1},
			{"Which cookie flag prevents JavaScript from reading a cookie?", []string{"Secure", "SameSite", "HttpOnly", "Domain"}, 2},
		},
	},
	{
		Quiz: model.Quiz{
			ID:          "q2",
			Title:       "Network Security Basics",
			Description: "Portlar, protokollar va tarmoq hujumlari.",
			Category:    "Network",
			MinScore:    60,
		},
		Questions: []QuestionSeed{
			{"Which port does HTTPS use by default?", []string{"80", "21", "443", "8080"}, 2},
			{"Which tool is commonly used for port scanning?", []string{"Nmap", "Ghidra", "John the Ripper", "Burp Intruder"}, 0},
			{"What does a man-in-the-middle attack compromise first?", []string{"Disk encryption", "The communication channel", "The BIOS", "The compiler"}, 1},
			{"Which protocol resolves IP addresses to MAC addresses?", []string{"DNS", "DHCP", "ARP", "ICMP"}, 2},
			{"A SYN flood targets which part of TCP?", []string{"The three-way handshake", "Window scaling", "Checksums", "Urgent pointers"}, 0},
		},
	},
	{
		Quiz: model.Quiz{
			ID:          "q3",
			Title:       "Cryptography Essentials",
			Description: "Shifrlash, xeshlash va kalitlar almashinuvi.",
			Category:    "Cryptography",
			MinScore:    80,
		},
		Questions: []QuestionSeed{
			{"Which of these is an asymmetric algorithm?", []string{"AES", "RSA", "ChaCha20", "DES"}, 1},
			{"Which function is suitable for storing passwords?", []string{"MD5", "SHA-1", "bcrypt", "CRC32"}, 2},
			{"ROT13 applied twice yields...", []string{"The original text", "Reversed text", "ROT26 ciphertext", "Base64"}, 0},
			{"Diffie-Hellman is used for...", []string{"Digital signatures only", "Key exchange", "Hashing", "Compression"}, 1},
		},
	},
}
