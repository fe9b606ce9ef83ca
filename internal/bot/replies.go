package bot

import (
	"fmt"
	"strings"

	"paurax-bot/internal/catalog"
	"paurax-bot/internal/models"
)

const walletURL = "https://paurax.vercel.app"

const mainMenu = `Welcome to PauraX 🇮🇳 — civic investment made simple!

1️⃣ Report an issue — just send me a photo of the problem.
2️⃣ See top issues in your area and invest — reply *issues*.
3️⃣ Learn how to submit a report — reply *learn*.

You can ask me anything about PauraX, and track your Civic Coins anytime at ` + walletURL

const instructions = `Submitting a report is easy:

1. Snap a photo of the problem — a pothole, a broken streetlight, uncollected garbage.
2. Send the photo to me here on WhatsApp.
3. Reply with your area's PIN code or locality when I ask.

That's it! Our team verifies every report. Type *reset* anytime to come back to the menu.`

const areaPrompt = "Sure! Please reply with your area name or PIN code and I'll pull up the top issues near you."

const pinPrompt = "To file this report, please reply with your area's PIN code or locality name."

const resetHint = "Type *reset* to return to the main menu."

const fallbackAnalysis = "Thank you for the photo! I couldn't identify the exact problem, so I'll file it as a general issue."

const invalidSelection = "That doesn't look like a valid selection. Reply *invest 1*, *invest 2* or *invest 3* to pick a project."

const invalidAmount = "Please enter a valid number for your contribution, e.g. 500."

const reportListUnavailable = "Sorry, I couldn't fetch the reported issues right now. Please try again later."

func reportConfirmation(issueType, location string) string {
	return fmt.Sprintf("✅ Your *%s* report for \"%s\" has been registered. Thank you for making your city better!", issueType, location)
}

func issueListing(area string, reported int64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here are the top issues near *%s*:\n\n", area)
	if reported > 0 {
		fmt.Fprintf(&b, "📍 %d citizen report(s) already on file for this area.\n\n", reported)
	}
	for i, p := range catalog.All() {
		fmt.Fprintf(&b, "%d. %s — est. cost ₹%d, full funding earns %d Civic Coins\n", i+1, p.Name, p.Cost, p.RewardCoins)
	}
	b.WriteString("\nReply *invest <number>* (e.g. invest 1) to contribute.")
	return b.String()
}

func contributionPrompt(p *catalog.Project) string {
	return fmt.Sprintf("Great choice! How much would you like to contribute to \"%s\" (in ₹)?", p.Name)
}

func paymentMessage(p *catalog.Project, amount string, coins int) string {
	return fmt.Sprintf("🪙 Contribute ₹%s to \"%s\" and you'll earn *%d Civic Coins*!\n\nComplete your payment here: %s/pay\nTrack your balance at %s", amount, p.Name, coins, walletURL, walletURL)
}

func reportList(issues []models.Issue) string {
	if len(issues) == 0 {
		return "No issues reported yet — be the first! Send me a photo of a problem in your area."
	}

	var b strings.Builder
	b.WriteString("Latest reported issues:\n\n")
	for _, issue := range issues {
		fmt.Fprintf(&b, "• %s at %s (%s)\n", issue.Type, issue.Location, issue.CreatedAt.Format("2 Jan 2006"))
	}
	return b.String()
}
