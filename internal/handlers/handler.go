package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"rekakata/internal/engine"
	"rekakata/internal/export"
	"rekakata/internal/format"
	"rekakata/internal/groq"
	"rekakata/internal/platform"
	"rekakata/internal/telegram"
	"rekakata/internal/validate"
)

type Options struct {
	Telegram *telegram.Client
	Engine   *engine.Engine
	Exports  *export.Store
	Logger   *slog.Logger
}

type Handler struct {
	tg      *telegram.Client
	engine  *engine.Engine
	exports *export.Store
	logger  *slog.Logger
}

func New(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		tg:      opts.Telegram,
		engine:  opts.Engine,
		exports: opts.Exports,
		logger:  logger,
	}
}

func (h *Handler) HandleUpdate(ctx context.Context, update telegram.Update) error {
	if update.Message == nil {
		return nil
	}

	msg := update.Message
	chatID := msg.Chat.ID
	userID := msg.From.ID

	if msg.IsCommand() {
		return h.handleCommand(ctx, chatID, userID, msg)
	}

	// Raw text is an implicit generate.
	if msg.Text != "" {
		return h.handleGenerate(ctx, chatID, userID, msg.Text)
	}

	return nil
}

func (h *Handler) handleCommand(ctx context.Context, chatID, userID int64, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return h.tg.SendMarkdown(chatID,
			"🎬 *RekaKata - UGC Prompt Generator*\n\n"+
				"Selamat datang! Saya akan membantu kamu membuat prompt text-to-video yang berkualitas tinggi.\n\n"+
				"*Perintah yang tersedia:*\n"+
				"• `/generate <ide>` - Buat prompt baru\n"+
				"• `/export` - Download prompt terakhir sebagai file .md\n"+
				"• `/help` - Lihat bantuan\n\n"+
				"*Contoh penggunaan:*\n"+
				"/generate Jualin skincare pagi hari yang bagus buat wajah berminyak\n\n"+
				"Atau ketik langsung ide kamu, dan saya akan bantu buatkan promptnya! ✨",
		)
	case "help":
		return h.tg.SendMarkdown(chatID,
			"🎬 *RekaKata - Bantuan*\n\n"+
				"`/start` - Mulai bot dan lihat pesan selamat datang\n"+
				"`/generate <ide>` - Buat prompt baru\n"+
				"`/export` - Download prompt terakhir sebagai file .md\n"+
				"`/help` - Lihat pesan bantuan ini\n\n"+
				"*Tips:*\n"+
				"• Kamu juga bisa langsung mengetik ide tanpa perintah\n"+
				"• Semakin spesifik ide kamu, semakin bagus promptnya\n"+
				"• Gunakan bahasa Indonesia atau Inggris\n\n"+
				"*Platform yang didukung:*\n"+
				"• TikTok\n• Instagram Reels\n• YouTube Shorts",
		)
	case "ping":
		return h.tg.SendText(chatID, "🏓 Pong! Bot is alive and running.")
	case "generate":
		idea := strings.TrimSpace(msg.CommandArguments())
		if idea == "" {
			return h.tg.SendText(chatID, "⚠️ Mohon masukkan ide konten kamu!\n\nContoh: /generate Jualin skincare pagi hari")
		}
		return h.handleGenerate(ctx, chatID, userID, idea)
	case "debug":
		idea := strings.TrimSpace(msg.CommandArguments())
		if idea == "" {
			return h.tg.SendText(chatID, "⚠️ Masukkan ide untuk debug!")
		}
		return h.handleDebug(ctx, chatID, idea)
	case "export":
		return h.handleExport(chatID, userID)
	default:
		return h.tg.SendText(chatID, "❌ Perintah tidak dikenal. Gunakan /help.")
	}
}

func (h *Handler) handleGenerate(ctx context.Context, chatID, userID int64, idea string) error {
	h.tg.SendTyping(chatID)

	out, err := h.engine.Generate(ctx, idea, platform.Default)
	if err != nil {
		h.logger.Error("generation failed", "err", err, "user", userID)
		return h.tg.SendText(chatID, errorReply(err))
	}

	markdown := format.Markdown(out)
	if _, err := h.exports.Put(sessionID(userID), markdown); err != nil {
		h.logger.Error("artifact persist failed", "err", err, "user", userID)
	}

	if err := h.tg.SendMarkdown(chatID, format.ChatMessage(out)); err != nil {
		return err
	}
	return h.tg.SendMarkdown(chatID, "📁 Ketik `/export` untuk download file .md")
}

func (h *Handler) handleDebug(ctx context.Context, chatID int64, idea string) error {
	h.tg.SendTyping(chatID)

	out, err := h.engine.Generate(ctx, idea, platform.Default)
	if err != nil {
		return h.tg.SendText(chatID, errorReply(err))
	}

	raw := out.RawReply
	if len(raw) > 4000 {
		raw = raw[:4000] + "... (truncated)"
	}
	return h.tg.SendMarkdown(chatID, fmt.Sprintf("🐞 *RAW AI RESPONSE*:\n\n```\n%s\n```", raw))
}

func (h *Handler) handleExport(chatID, userID int64) error {
	art, ok := h.exports.Get(sessionID(userID))
	if !ok {
		return h.tg.SendText(chatID,
			"⚠️ Tidak ada prompt yang tersedia untuk diekspor. Buat prompt dulu dengan /generate")
	}

	caption := fmt.Sprintf("📄 Prompt dibuat %s", art.CreatedAt.Format("2006-01-02 15:04"))
	if err := h.tg.SendDocument(chatID, art.LatestPath, caption); err != nil {
		h.logger.Error("export send failed", "err", err, "user", userID)
		return h.tg.SendText(chatID, "❌ Gagal mengekspor file. Coba lagi nanti.")
	}
	return nil
}

func sessionID(userID int64) string {
	return fmt.Sprintf("tg-%d", userID)
}

// errorReply maps pipeline errors to user-facing chat text.
func errorReply(err error) string {
	var gerr *groq.GenerationError
	switch {
	case errors.Is(err, validate.ErrEmptyInput):
		return "⚠️ Ide kamu masih kosong. Tulis ide konten yang mau dibuat ya!"
	case errors.Is(err, validate.ErrInputTooLong):
		return "⚠️ Ide kamu terlalu panjang. Coba ringkas dulu ya!"
	case errors.Is(err, platform.ErrUnsupportedPlatform):
		return "⚠️ Platform itu belum didukung. Pilih TikTok, Instagram, atau YouTube."
	case errors.As(err, &gerr):
		switch gerr.Reason {
		case groq.ReasonRateLimited:
			return "⏳ Lagi banyak permintaan. Tunggu sebentar lalu coba lagi ya!"
		case groq.ReasonUnauthorized:
			return "❌ Konfigurasi API bermasalah. Hubungi admin."
		case groq.ReasonTimeout:
			return "⏰ Permintaan kehabisan waktu. Coba lagi ya!"
		}
		return "❌ Terjadi kesalahan saat generate. Coba lagi ya!"
	default:
		return "❌ Terjadi kesalahan. Silakan coba lagi nanti."
	}
}
