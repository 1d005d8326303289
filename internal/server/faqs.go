package server

// FAQ is a static question/answer pair rendered by the site frontend.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

var faqEntries = []FAQ{
	{
		Question: "Is converting YouTube to MP4 legal?",
		Answer:   "Yes, for personal use. However, distributing copyrighted content is illegal.",
	},
	{
		Question: "Can I download age-restricted videos?",
		Answer:   "Yes, if you're logged into a YouTube account verifying your age.",
	},
	{
		Question: "Does this work on iPhones?",
		Answer:   "Absolutely! Use Safari, Chrome, or Firefox on iOS.",
	},
	{
		Question: "Are there download limits?",
		Answer:   "No—enjoy unlimited conversions daily.",
	},
	{
		Question: "Can I convert live streams to MP4?",
		Answer:   "No—only pre-recorded videos are supported.",
	},
	{
		Question: "Is the tool free?",
		Answer:   "Yes! Free conversions with no hidden fees.",
	},
	{
		Question: "What video formats are supported?",
		Answer:   "MP4, MKV, AVI, and MOV.",
	},
	{
		Question: "Can I download 4K videos?",
		Answer:   "Yes—select '4K' in the quality menu.",
	},
	{
		Question: "How to ensure the best video quality?",
		Answer:   "Choose the highest resolution available (e.g., 4K or 1080p).",
	},
	{
		Question: "Do you support non-English videos?",
		Answer:   "Yes—works with all languages and regions.",
	},
}
