package generator

// Seed lists for profile generation. These are open-ended on purpose to give
// the model maximum creative freedom; one entry from each list is drawn
// uniformly per profile.

var domains = []string{
	"Corporate Life", "The Great Outdoors", "Culinary Arts", "Underground Subculture",
	"Academia", "The Gig Economy", "Wellness & Spirituality", "Niche Tech",
	"Creative Arts", "Service Industry", "Local Politics", "DIY & Crafts",
	"Time Travel Ethics", "Competitive Dog Grooming", "Liminal Spaces", "Amateur Geology",
	"Cryptozoology", "Vintage Fashion", "Urban Farming", "SoundCloud Rapping",
	"Professional Cuddling", "Ghost Hunting", "Ventriloquism", "Extreme Ironing",
	"Taxidermy", "Mycology", "Experimental Noise Music", "Medieval Reenactment",
	"Influencer House Drama", "Tiny House Living", "Van Life", "Doomsday Prepping",
	"Competitive Eating", "Parkour", "Urban Exploring", "Fan Fiction Writing",
	"Forensic Accounting", "Dairy Farming", "Puppetry", "Modular Synthesis",
	"EFY Counselor Chic", "The Multi-Level Marketing (MLM) Grind", "Post-Mission Re-entry",
	"South Provo Skate Park Culture", "Vance Hall Corporate Ambition", "The BYU Creamery Supply Chain",
	"Maple Syrup Geopolitics", "Tim Hortons Drive-Thru Etiquette", "Junior B Hockey Enforcer History",
	"The Strategic Reserve of Poutine", "Niche Board Game Rules Lawyering",
	"Aggressive Thrift Store Flipping", "Competitive Soda Mixing (Dirty Sodas)",
	"Unsolicited LinkedIn Networking",
}

var coreTraits = []string{
	"Aggressively Optimistic", "Terminally Chill", "Suspiciously Specific", "Hopeless Romantic",
	"Brutally Honest", "High Maintenance", "Chaotic Good", "Socially Awkward",
	"Overly Competitive", "Philosophical", "Nostalgic", "Literal-minded",
	"Aggressively Wholesome", "Chronically Online", "Vaguely Threatening", "Uncomfortably Intense",
	"Painfully Hip", "Delightfully Tacky", "Spiritually Bypassing", "Main Character Energy",
	"Golden Retriever Energy", "Black Cat Energy", "Neurospicy", "Goblincore",
	"Cottagecore", "Dark Academia", "Himbo", "Girlboss",
	"Cryptobro", "Horse Girl", "Disney Adult", "iPad Kid Grown Up",
	"Old Soul", "Tech Pessimist", "Radical Softness", "Menace to Society", "Engagement-Hungry",
	"Aggressively Modest", "NCMO (Non-Committal Make Out) Professional",
	"Theologically Confident", "Frontrunner Dependent", "RM (Returned Missionary) Energy",
	"Weaponized Politeness", "Metric System Supremacist", "Mid-Winter Shorts Wearer",
	"Apologetic to a Fault",
}

var interests = []string{
	"Obscure History", "Trash TV", "Fermentation", "Vintage Tech", "Urban Exploration",
	"Extreme Couponing", "Cryptids", "Foraging", "Competitive Gaming", "Upcycling",
	"Astrology", "True Crime", "Public Transit", "Insects", "Mid-century Furniture",
	"Collecting Spoons", "Cloud Watching", "Wikipedia Editing", "Geoguessr",
	"Sourdough Baking", "Mechanical Keyboards", "Fountain Pens", "Moss",
	"Train Spotting", "Dumpster Diving", "Bad Movies", "Conspiracy Theories",
	"Pottery", "Beekeeping", "Lockpicking", "Origami",
	"Dungeons & Dragons", "Analog Photography", "Synthesizers", "Birdwatching",
	"Tarot Reading", "Genealogy", "Horology (Watch Making)", "Perfume Making",
	"Hammocking at Rock Canyon", "CougarTail Consumption Metrics",
	"Finding the best 'Dirty Soda' Combo", "Planning a Wedding in 3 Weeks",
	"Disk Golfing at Slate Canyon", "Analyzing Twilight Imperium 4th Edition Factions",
	"Going to Eagle Mountain for the vibe", "Hiking Timp", "Skiing Sundance",
	"Pothole Identification", "Loonie/Toonie Collection", "Moose Safety",
	"Predicting the exact moment the ice breaks",
}

var normalNameOrigins = []string{
	"Modern American", "Utah County", "Classic British", "French", "Italian", "Spanish",
	"Nature-based", "Hipster", "Germanic", "Scandinavian", "Biblical",
	"Greek Mythology", "Roman", "Slavic", "Japanese", "Korean",
	"Botanical", "Victorian", "Irish", "Arabic", "Portuguese", "Apostle-Adjacent",
}

var chaosNameOrigins = []string{
	"Cyberpunk/Sci-Fi", "Ancient Sumerian", "Space Opera", "Medieval Fantasy",
	"Eldritch Horror", "Techno-Barbarian", "Cryptid", "Robot", "Glitch", "80s Action Hero",
	"Furniture Item", "Pharmaceutical Drug", "Unix Command", "IKEA Product", "Pokemon",
	"Tragedeigh-style (Adding a lot of extra Y’s and H’s)",
}
