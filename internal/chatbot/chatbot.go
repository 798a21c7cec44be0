// Package chatbot answers user messages with a fixed keyword decision table.
// There is no learning and no external NLP call: intents are matched against
// keyword lists and the reply is canned text, optionally filled in with the
// caller's own complaints and tickets.
package chatbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/noorjahan04/City-Backend/internal/model"
	"github.com/noorjahan04/City-Backend/internal/repository"
)

// Responder turns a user message into a reply.
type Responder interface {
	Reply(ctx context.Context, userID uuid.UUID, message string) (string, error)
}

type responder struct {
	categoryRepo  repository.CategoryRepository
	subRepo       repository.SubCategoryRepository
	complaintRepo repository.ComplaintRepository
	ticketRepo    repository.TicketRepository
}

// New creates the rule-based responder.
func New(
	categoryRepo repository.CategoryRepository,
	subRepo repository.SubCategoryRepository,
	complaintRepo repository.ComplaintRepository,
	ticketRepo repository.TicketRepository,
) Responder {
	return &responder{
		categoryRepo:  categoryRepo,
		subRepo:       subRepo,
		complaintRepo: complaintRepo,
		ticketRepo:    ticketRepo,
	}
}

var (
	greetingWords = []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening"}

	howToComplainWords = []string{
		"raise complaint", "make complaint", "create complaint", "file complaint",
		"how to complain", "how to raise a complaint", "how do i complain",
	}

	howToTicketWords = []string{
		"support ticket", "raise ticket", "create ticket",
		"how to raise ticket", "how to create ticket",
	}

	complaintWords = []string{"complaint", "complaints"}
	ticketWords    = []string{"ticket", "tickets", "support", "support ticket"}
	categoryWords  = []string{"categories", "subcategories", "category list", "subcategory list", "which categories"}
	helpWords      = []string{"help", "how", "what", "guide"}
	thanksWords    = []string{"thank", "thanks", "thx"}
)

const (
	fallbackReply     = "Sorry, I didn't understand that. Please try asking in another way."
	noComplaintsReply = "You currently have no complaints filed."
	noTicketsReply    = "You currently have no support tickets."
)

func containsAny(message string, words []string) bool {
	for _, w := range words {
		if strings.Contains(message, w) {
			return true
		}
	}
	return false
}

// Reply walks the intent table in priority order: greeting, how-to-complain,
// how-to-ticket, category listing, both statuses, complaint status, ticket
// status, generic help, thanks, fallback.
func (r *responder) Reply(ctx context.Context, userID uuid.UUID, message string) (string, error) {
	lower := strings.ToLower(message)

	switch {
	case containsAny(lower, greetingWords):
		return "Hello! I'm here to help you with complaints, support tickets, categories and how to use the system. Ask me things like:\n" +
			"- 'How do I raise a complaint?'\n" +
			"- 'What is the status of my complaints?'\n" +
			"- 'How do I create a support ticket?'\n" +
			"How can I help you today?", nil

	case containsAny(lower, howToComplainWords):
		return r.howToComplain(ctx)

	case containsAny(lower, howToTicketWords):
		return "To create a support ticket:\n" +
			"1. Open the 'Support' (or 'Tickets') page in your dashboard.\n" +
			"2. Click 'Create Ticket' or 'New Ticket'.\n" +
			"3. Enter a clear subject and describe your issue in the message.\n" +
			"4. Submit — an admin will reply. You can check ticket status anytime in Support.", nil

	case containsAny(lower, categoryWords):
		return r.categoryListing(ctx)
	}

	mentionsComplaint := containsAny(lower, complaintWords)
	mentionsTicket := containsAny(lower, ticketWords)

	switch {
	case mentionsComplaint && mentionsTicket:
		complaints, err := r.complaintSummary(ctx, userID)
		if err != nil {
			return "", err
		}
		tickets, err := r.ticketSummary(ctx, userID)
		if err != nil {
			return "", err
		}
		// Headings only when there is something to summarize.
		if complaints != noComplaintsReply {
			complaints = "Complaints Summary\n" + complaints
		}
		if tickets != noTicketsReply {
			tickets = "Tickets Summary\n" + tickets
		}
		return fmt.Sprintf("I see you asked about both complaints and support tickets. Here are both summaries:\n\n%s\n\n---\n\n%s", complaints, tickets), nil

	case mentionsComplaint:
		return r.complaintSummary(ctx, userID)

	case mentionsTicket:
		return r.ticketSummary(ctx, userID)

	case containsAny(lower, helpWords):
		return "I can help with:\n" +
			"- Raising a complaint: ask 'how to raise complaint' or 'create complaint'\n" +
			"- Complaint status: ask 'complaint status' or 'status of my complaints'\n" +
			"- Raising a support ticket: ask 'how to create ticket' or 'raise ticket'\n" +
			"- Ticket status: ask 'ticket status' or 'my tickets'\n" +
			"- View categories: ask 'categories' or 'subcategories'\n" +
			"What would you like to do?", nil

	case containsAny(lower, thanksWords):
		return "You're welcome! If you need anything else, ask me about complaints or support tickets.", nil
	}

	return fallbackReply, nil
}

func (r *responder) howToComplain(ctx context.Context) (string, error) {
	categories, err := r.categoryRepo.List(ctx)
	if err != nil {
		return "", err
	}

	categoryList := "No categories available."
	if len(categories) > 0 {
		var lines []string
		for _, c := range categories {
			line := "• " + c.Name
			if c.Description != "" {
				line += " — " + c.Description
			}
			lines = append(lines, line)
		}
		categoryList = strings.Join(lines, "\n")
	}

	return "To raise a complaint:\n" +
		"1. Open the 'Complaints' page in your dashboard.\n" +
		"2. Click 'Create Complaint'.\n" +
		"3. Select a category (and optionally subcategory), enter a short problem title, a full description, attach images, and optionally share your location.\n" +
		"4. Submit — you'll receive updates when the status changes.\n\nAvailable categories:\n" +
		categoryList, nil
}

func (r *responder) categoryListing(ctx context.Context) (string, error) {
	categories, err := r.categoryRepo.List(ctx)
	if err != nil {
		return "", err
	}
	if len(categories) == 0 {
		return "No categories are available at the moment.", nil
	}

	var lines []string
	for _, c := range categories {
		subs, err := r.subRepo.ListByCategory(ctx, c.ID)
		if err != nil {
			return "", err
		}
		subList := "No subcategories"
		if len(subs) > 0 {
			names := make([]string, len(subs))
			for i, s := range subs {
				names[i] = s.Name
			}
			subList = strings.Join(names, ", ")
		}
		lines = append(lines, fmt.Sprintf("Category: %s\n  Subcategories: %s", c.Name, subList))
	}
	return "Available categories and subcategories:\n\n" + strings.Join(lines, "\n\n"), nil
}

func (r *responder) complaintSummary(ctx context.Context, userID uuid.UUID) (string, error) {
	complaints, err := r.complaintRepo.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(complaints) == 0 {
		return noComplaintsReply, nil
	}

	var pending, inProgress, resolved int
	var lines []string
	for i, c := range complaints {
		switch c.Status {
		case model.ComplaintStatusPending:
			pending++
		case model.ComplaintStatusInProgress:
			inProgress++
		case model.ComplaintStatusResolved:
			resolved++
		}

		categoryName := "—"
		if c.Category != nil {
			categoryName = c.Category.Name
		}
		subName := "—"
		if c.SubCategory != nil {
			subName = c.SubCategory.Name
		}
		description := c.Description
		if description == "" {
			description = "—"
		}
		lines = append(lines, fmt.Sprintf(
			"%d. [%s] Category: %s, Subcategory: %s\n   Problem: %s\n   Description: %s",
			i+1, c.Status, categoryName, subName, c.Problem, description,
		))
	}

	return fmt.Sprintf(
		"You have %d Pending, %d In Progress, and %d Resolved complaint(s).\n\nComplaint Details:\n%s",
		pending, inProgress, resolved, strings.Join(lines, "\n\n"),
	), nil
}

func (r *responder) ticketSummary(ctx context.Context, userID uuid.UUID) (string, error) {
	tickets, err := r.ticketRepo.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(tickets) == 0 {
		return noTicketsReply, nil
	}

	var open, pending, closed int
	var lines []string
	for i, t := range tickets {
		switch t.Status {
		case model.TicketStatusOpen:
			open++
		case model.TicketStatusPending:
			pending++
		case model.TicketStatusClosed:
			closed++
		}

		reply := "No reply yet"
		if t.Reply != "" {
			reply = "Reply: " + t.Reply
		}
		lines = append(lines, fmt.Sprintf(
			"%d. [%s] Subject: %s\n   Message: %s\n   %s",
			i+1, t.Status, t.Subject, t.Message, reply,
		))
	}

	return fmt.Sprintf(
		"You have %d open, %d pending, and %d closed support ticket(s).\n\nTicket Details:\n%s",
		open, pending, closed, strings.Join(lines, "\n\n"),
	), nil
}
