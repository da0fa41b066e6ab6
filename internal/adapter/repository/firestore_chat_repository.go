package repository

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"

	"cwrs/internal/domain/entity"
	"cwrs/internal/domain/repository"
	"cwrs/pkg/errors"
	"cwrs/pkg/logger"
)

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

func (r *firestoreChatRepository) Create(ctx context.Context, chat *entity.Chat) error {
	_, err := r.client.Collection(chatsCollection).Doc(chat.ID).Set(ctx, chat)
	if err != nil {
		return errors.Internal("Failed to create chat", err)
	}
	return nil
}

func (r *firestoreChatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	doc, err := r.client.Collection(chatsCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Chat", err)
		}
		return nil, errors.Internal("Failed to get chat", err)
	}
	return decodeChat(doc)
}

func (r *firestoreChatRepository) participantQuery(userID string) firestore.Query {
	return r.client.Collection(chatsCollection).Where("participants", "array-contains", userID)
}

func (r *firestoreChatRepository) ListByParticipant(ctx context.Context, userID string) ([]*entity.Chat, error) {
	docs, err := r.participantQuery(userID).Documents(ctx).GetAll()
	if err != nil {
		logger.Error("ChatRepository ListByParticipant Error: user=%s: %v", userID, err)
		return nil, errors.Internal("Failed to list chats", err)
	}
	return decodeChats(docs), nil
}

func (r *firestoreChatRepository) WatchByParticipant(ctx context.Context, userID string, fn func([]*entity.Chat) error) error {
	iter := r.participantQuery(userID).Snapshots(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err != nil {
			if isStopped(ctx, err) {
				return nil
			}
			return errors.Internal("Chat listener failed", err)
		}

		docs, err := snap.Documents.GetAll()
		if err != nil {
			return errors.Internal("Failed to read chat snapshot", err)
		}
		if err := fn(decodeChats(docs)); err != nil {
			return err
		}
	}
}

func decodeChat(doc *firestore.DocumentSnapshot) (*entity.Chat, error) {
	var chat entity.Chat
	if err := doc.DataTo(&chat); err != nil {
		return nil, errors.Internal("Failed to parse chat data", err)
	}
	chat.ID = doc.Ref.ID
	return &chat, nil
}

func decodeChats(docs []*firestore.DocumentSnapshot) []*entity.Chat {
	chats := make([]*entity.Chat, 0, len(docs))
	for _, doc := range docs {
		chat, err := decodeChat(doc)
		if err != nil {
			logger.Warn("Skipping malformed chat %s: %v", doc.Ref.ID, err)
			continue
		}
		chats = append(chats, chat)
	}
	return chats
}

type firestoreMessageRepository struct {
	client *firestore.Client
}

func NewFirestoreMessageRepository(client *firestore.Client) repository.MessageRepository {
	return &firestoreMessageRepository{
		client: client,
	}
}

func (r *firestoreMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	ref, _, err := r.client.Collection(messagesCollection).Add(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}
	message.ID = ref.ID
	return nil
}

func (r *firestoreMessageRepository) chatQuery(chatID string) firestore.Query {
	return r.client.Collection(messagesCollection).Where("chatId", "==", chatID)
}

// ListByChat returns the chat's messages, oldest first. Ordering happens in
// memory so the query needs no composite index.
func (r *firestoreMessageRepository) ListByChat(ctx context.Context, chatID string) ([]*entity.Message, error) {
	docs, err := r.chatQuery(chatID).Documents(ctx).GetAll()
	if err != nil {
		logger.Error("MessageRepository ListByChat Error: chat=%s: %v", chatID, err)
		return nil, errors.Internal("Failed to list messages", err)
	}
	messages := decodeMessages(docs)
	sortByTimestamp(messages)
	return messages, nil
}

func (r *firestoreMessageRepository) Latest(ctx context.Context, chatID string) (*entity.Message, error) {
	docs, err := r.chatQuery(chatID).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to get latest message", err)
	}
	latest := latestMessage(decodeMessages(docs))
	if latest == nil {
		return nil, errors.NotFound("Message", nil)
	}
	return latest, nil
}

func (r *firestoreMessageRepository) unreadQuery(chatID, receiverID string) firestore.Query {
	return r.chatQuery(chatID).
		Where("receiverId", "==", receiverID).
		Where("read", "==", false)
}

func (r *firestoreMessageRepository) CountUnread(ctx context.Context, chatID, receiverID string) (int, error) {
	docs, err := r.unreadQuery(chatID, receiverID).Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count unread messages", err)
	}
	return len(docs), nil
}

func (r *firestoreMessageRepository) MarkRead(ctx context.Context, chatID, receiverID string) (int, error) {
	docs, err := r.unreadQuery(chatID, receiverID).Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to load unread messages", err)
	}
	if len(docs) == 0 {
		return 0, nil
	}

	bw := r.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(docs))
	for _, doc := range docs {
		job, err := bw.Update(doc.Ref, []firestore.Update{{Path: "read", Value: true}})
		if err != nil {
			bw.End()
			return 0, errors.Internal("Failed to queue read flag", err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	marked := 0
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			logger.Warn("MarkRead: chat=%s: %v", chatID, err)
			continue
		}
		marked++
	}
	return marked, nil
}

func (r *firestoreMessageRepository) WatchByChat(ctx context.Context, chatID string, fn func([]*entity.Message) error) error {
	iter := r.chatQuery(chatID).Snapshots(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err != nil {
			if isStopped(ctx, err) {
				return nil
			}
			return errors.Internal("Message listener failed", err)
		}

		docs, err := snap.Documents.GetAll()
		if err != nil {
			return errors.Internal("Failed to read message snapshot", err)
		}

		messages := decodeMessages(docs)
		sortByTimestamp(messages)
		if err := fn(messages); err != nil {
			return err
		}
	}
}

func decodeMessage(doc *firestore.DocumentSnapshot) (*entity.Message, error) {
	var message entity.Message
	if err := doc.DataTo(&message); err != nil {
		return nil, errors.Internal("Failed to parse message data", err)
	}
	message.ID = doc.Ref.ID
	return &message, nil
}

func decodeMessages(docs []*firestore.DocumentSnapshot) []*entity.Message {
	messages := make([]*entity.Message, 0, len(docs))
	for _, doc := range docs {
		message, err := decodeMessage(doc)
		if err != nil {
			logger.Warn("Skipping malformed message %s: %v", doc.Ref.ID, err)
			continue
		}
		messages = append(messages, message)
	}
	return messages
}

func sortByTimestamp(messages []*entity.Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
}

func latestMessage(messages []*entity.Message) *entity.Message {
	var latest *entity.Message
	for _, m := range messages {
		if latest == nil || m.Timestamp.After(latest.Timestamp) {
			latest = m
		}
	}
	return latest
}
