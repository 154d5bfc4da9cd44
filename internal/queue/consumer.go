package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartReservationConsumer connects to the broker, declares the durable
// reservation.confirmed queue and consumes it, appending one line per
// confirmation to logs/reservations.log. It runs a reconnect loop with
// exponential backoff and never returns under normal operation; failed
// messages are rejected without requeue so a poison message cannot spin
// the loop.
func StartReservationConsumer() error {
	return runConsumer(ReservationConfirmedQueue, handleReservationMessage)
}

// StartInvitationConsumer consumes invitation.created, appending one
// line per invitation to logs/invitations.log. In a full deployment a
// mail worker would sit here instead.
func StartInvitationConsumer() error {
	return runConsumer(InvitationCreatedQueue, handleInvitationMessage)
}

func runConsumer(queueName string, handle func([]byte) error) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(brokerURL())
		if err != nil {
			log.Printf("%s-consumer: failed to dial broker: %v; retrying in %s", queueName, err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(conn, queueName, handle); err != nil {
			log.Printf("%s-consumer: consume loop ended: %v; reconnecting", queueName, err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, queueName string, handle func([]byte) error) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("%s-consumer: set QoS failed: %v", queueName, err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handle(d.Body); err != nil {
			log.Printf("%s-consumer: handle message failed: %v", queueName, err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleReservationMessage(body []byte) error {
	var ev ReservationConfirmedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	line := fmt.Sprintf("[%s] Reservation confirmed | reservation_id=%s | user_id=%s | event_id=%s | event=%q | seat=%q | location=%q\n",
		ev.ConfirmedAt, ev.ReservationID, ev.UserID, ev.EventID, ev.EventTitle, ev.SeatLabel, ev.LocationName)
	return appendLog("reservations.log", line)
}

func handleInvitationMessage(body []byte) error {
	var ev InvitationCreatedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	line := fmt.Sprintf("[%s] Invitation created | invitation_id=%s | event_id=%s | event=%q | email=%s\n",
		ev.CreatedAt, ev.InvitationID, ev.EventID, ev.EventTitle, ev.Email)
	return appendLog("invitations.log", line)
}

func appendLog(name, line string) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join("logs", name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
