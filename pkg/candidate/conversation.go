package candidate

import (
	"github.com/artem13815/recruitflow/pkg/message"
)

// FieldState — состояние сбора одного отслеживаемого поля.
// Инвариант: answered подразумевает непустое value.
type FieldState struct {
	Value      any     `json:"value,omitempty"` // строка, число или []string
	Confidence float64 `json:"confidence"`      // 0-1
	Asked      bool    `json:"asked"`
	Answered   bool    `json:"answered"`
	Source     Source  `json:"source,omitempty"`
}

// FieldStatus — проекция состояния поля для UI-чеклиста.
// Не хранится: всегда пересчитывается из FieldState.
type FieldStatus string

const (
	FieldStatusAnswered FieldStatus = "answered"
	FieldStatusAsked    FieldStatus = "asked"
	FieldStatusMissing  FieldStatus = "missing"
)

// Status возвращает производный статус поля: answered имеет приоритет
// над asked, даже если поле спрашивали раньше, чем ответили.
func (fs FieldState) Status() FieldStatus {
	switch {
	case fs.Answered && fs.Value != nil:
		return FieldStatusAnswered
	case fs.Asked:
		return FieldStatusAsked
	default:
		return FieldStatusMissing
	}
}

// ConversationState — карта состояний всех отслеживаемых полей.
// Всегда содержит полный набор ключей TrackedFields.
type ConversationState struct {
	Fields map[FieldKey]FieldState `json:"fields"`
}

// parsedFieldKey маппит имя parsed-поля (snake_case из парсера или
// camelCase из API) на отслеживаемый ключ; "" для неизвестных имён.
func parsedFieldKey(name string) FieldKey {
	switch name {
	case "name":
		return FieldName
	case "email":
		return FieldEmail
	case "phone":
		return FieldPhone
	case "experience", "years_experience", "yearsExperience":
		return FieldExperience
	case "skills":
		return FieldSkills
	case "currentCompany", "current_company", "company":
		return FieldCurrentCompany
	case "education":
		return FieldEducation
	case "location":
		return FieldLocation
	default:
		return ""
	}
}

// directValue возвращает значение отслеживаемого поля из верхнеуровневых
// атрибутов кандидата. Пустая строка, пустой список и nil считаются
// отсутствием значения, а не «ответом с пустым значением».
func directValue(c Candidate, key FieldKey) (any, bool) {
	switch key {
	case FieldName:
		return stringValue(c.Name)
	case FieldEmail:
		return stringValue(c.Email)
	case FieldPhone:
		return stringValue(c.Phone)
	case FieldExperience:
		if c.YearsExperience == nil {
			return nil, false
		}
		return *c.YearsExperience, true
	case FieldSkills:
		if len(c.Skills) == 0 {
			return nil, false
		}
		return c.Skills, true
	case FieldCurrentCompany:
		return stringValue(c.CurrentCompany)
	case FieldEducation:
		return stringValue(c.Education)
	case FieldLocation:
		return stringValue(c.Location)
	default:
		return nil, false
	}
}

func stringValue(s string) (any, bool) {
	if s == "" {
		return nil, false
	}
	return s, true
}

// DeriveConversationState строит состояние диалога из снапшота кандидата
// и его переписки. Чистая функция: читает аргументы, возвращает новую
// структуру, ничего не кеширует.
//
// Порядок replay сообщений — порядок массива msgs (репозиторий отдаёт
// их по timestamp, затем по порядку вставки); более позднее сообщение
// перезаписывает состояние поля (last-write-wins).
func DeriveConversationState(c Candidate, msgs []message.Message) ConversationState {
	state := ConversationState{Fields: make(map[FieldKey]FieldState, len(TrackedFields))}
	for _, key := range TrackedFields {
		state.Fields[key] = FieldState{}
	}

	// Значения из резюме/ручного ввода: answered с уверенностью из
	// parsed-полей (шкала 0-100 -> 0-1), либо 0.5 по умолчанию.
	for _, key := range TrackedFields {
		v, ok := directValue(c, key)
		if !ok {
			continue
		}
		fs := FieldState{Value: v, Confidence: 0.5, Answered: true, Source: SourceResume}
		for _, pf := range c.ParsedFields {
			if parsedFieldKey(pf.Name) != key {
				continue
			}
			fs.Confidence = pf.Confidence / 100
			if pf.Source != "" {
				fs.Source = pf.Source
			}
			break
		}
		state.Fields[key] = fs
	}

	// Replay переписки в порядке массива.
	for _, m := range msgs {
		switch m.Direction {
		case message.DirectionOutgoing:
			for _, name := range m.AskedFields {
				key := parsedFieldKey(name)
				if key == "" {
					continue
				}
				fs := state.Fields[key]
				if fs.Answered {
					continue
				}
				fs.Asked = true
				state.Fields[key] = fs
			}
		case message.DirectionIncoming:
			for name, ef := range m.ExtractedFields {
				key := parsedFieldKey(name)
				if key == "" {
					continue
				}
				fs := state.Fields[key]
				fs.Answered = true
				fs.Value = ef.Value
				fs.Confidence = ef.Confidence
				fs.Source = SourceReply
				state.Fields[key] = fs
			}
		}
	}

	return state
}

// PendingFields возвращает поля, которые ещё не спрашивали и на которые
// нет ответа, в каноническом порядке TrackedFields — из них composer
// выбирает вопросы для следующего сообщения.
func PendingFields(state ConversationState) []FieldKey {
	var pending []FieldKey
	for _, key := range TrackedFields {
		fs := state.Fields[key]
		if !fs.Answered && !fs.Asked {
			pending = append(pending, key)
		}
	}
	return pending
}

// OverallConfidence — средняя уверенность по полям с ненулевой
// уверенностью, в шкале 0-100 (хранится на кандидате).
func OverallConfidence(state ConversationState) float64 {
	var sum float64
	var n int
	for _, key := range TrackedFields {
		fs := state.Fields[key]
		if fs.Confidence > 0 {
			sum += fs.Confidence
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n) * 100
}
