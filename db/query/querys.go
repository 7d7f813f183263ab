package query

// EventQuery covers the equality-predicate lookups on events: attempt
// chains and object-id scans. Range filters go through the dedicated DAO
// method instead.
type EventQuery struct {
	Query

	MerchantId       *string
	ProfileId        *string
	ObjectId         *string
	InitialAttemptId *string
}

func (q *EventQuery) WhereMap() map[string]interface{} {
	maps := make(map[string]interface{})
	if q.MerchantId != nil {
		maps["merchant_id"] = *q.MerchantId
	}
	if q.ProfileId != nil {
		maps["profile_id"] = *q.ProfileId
	}
	if q.ObjectId != nil {
		maps["object_id"] = *q.ObjectId
	}
	if q.InitialAttemptId != nil {
		maps["initial_attempt_id"] = *q.InitialAttemptId
	}
	return maps
}
