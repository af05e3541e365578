package rama

var LogWhere = logWhere
